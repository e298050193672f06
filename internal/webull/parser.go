// Package webull parses the Webull order-export CSV into fill records.
// This is the ingestion collaborator: the only hard failure it reports is a
// structurally unreadable export; individual bad rows are skipped and
// counted.
package webull

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"
	"github.com/AadSub19/AI-Trading-Journal/internal/timeparse"
)

// ParseStats counts what the parser had to discard.
type ParseStats struct {
	TotalRows     int // data rows read, excluding the header
	FilledRows    int // rows with status Filled that became fills
	SkippedStatus int // rows filtered out for a non-Filled status
	MalformedRows int // rows dropped for unusable symbol, side, quantity, or price
	BadTimestamps int // filled rows whose timestamp could not be normalized
}

// Parser reads Webull order exports.
type Parser struct {
	logger ports.Logger
}

// NewParser creates a parser.
func NewParser(logger ports.Logger) *Parser {
	return &Parser{logger: logger}
}

// requiredColumns must all be present in the export header.
var requiredColumns = []string{"Symbol", "Side", "Status", "Filled", "Avg Price", "Filled Time"}

// ParseOrders reads the export and returns the Filled rows as fills, in file
// order. Rows with unparsable timestamps are kept with the zero-time marker;
// the matching driver decides what to do with them.
func (p *Parser) ParseOrders(ctx context.Context, r io.Reader) ([]*domain.Fill, *ParseStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Webull pads some rows unevenly
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ports.ErrUnreadableInput, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, nil, fmt.Errorf("%w: missing column %q", ports.ErrMalformedInput, name)
		}
	}

	stats := &ParseStats{}
	var fills []*domain.Fill
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A single unreadable row is a row-level problem, not a batch
			// failure.
			stats.MalformedRows++
			p.logger.Warn(ctx, "Skipping unreadable CSV row", map[string]interface{}{"error": err.Error()})
			continue
		}
		stats.TotalRows++

		fill, err := p.parseRow(columns, record)
		if err != nil {
			if errors.Is(err, errNotFilled) {
				stats.SkippedStatus++
				continue
			}
			stats.MalformedRows++
			p.logger.Warn(ctx, "Skipping malformed order row", map[string]interface{}{"error": err.Error()})
			continue
		}
		if !fill.HasTime() {
			stats.BadTimestamps++
		}
		stats.FilledRows++
		fills = append(fills, fill)
	}

	p.logger.Info(ctx, "Order export parsed", map[string]interface{}{
		"rows": stats.TotalRows, "filled": stats.FilledRows,
		"skippedStatus": stats.SkippedStatus, "malformed": stats.MalformedRows,
		"badTimestamps": stats.BadTimestamps,
	})
	return fills, stats, nil
}

var errNotFilled = errors.New("order not filled")

func (p *Parser) parseRow(columns map[string]int, record []string) (*domain.Fill, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	status := domain.OrderStatus(field("Status"))
	if status != domain.StatusFilled {
		return nil, errNotFilled
	}

	symbol := field("Symbol")
	if symbol == "" {
		return nil, errors.New("missing symbol")
	}

	side := domain.OrderSide(field("Side"))
	if side != domain.Buy && side != domain.Sell {
		return nil, fmt.Errorf("unknown side %q", field("Side"))
	}

	qty, err := strconv.ParseInt(cleanNumber(field("Filled")), 10, 64)
	if err != nil || qty <= 0 {
		return nil, fmt.Errorf("invalid filled quantity %q", field("Filled"))
	}

	price, err := strconv.ParseFloat(cleanNumber(field("Avg Price")), 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("invalid avg price %q", field("Avg Price"))
	}

	// Timestamp failures are not malformed rows: the fill survives with the
	// missing-value marker and is counted upstream.
	filledTime, err := timeparse.Parse(field("Filled Time"))
	if err != nil {
		filledTime = time.Time{}
	}

	return &domain.Fill{
		Symbol:      symbol,
		CompanyName: field("Name"),
		Side:        side,
		Quantity:    qty,
		AvgPrice:    price,
		FilledTime:  filledTime,
		Status:      status,
	}, nil
}

// cleanNumber strips the decoration Webull adds to numeric fields
// ("@12.34", "1,000").
func cleanNumber(s string) string {
	s = strings.ReplaceAll(s, "@", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}
