// Package csvexport writes the matched trade journal in the spreadsheet
// layout, one row per exit leg, and reads it back for offline analysis.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"
	"github.com/AadSub19/AI-Trading-Journal/internal/timeparse"
)

// header matches the journal spreadsheet column order.
var header = []string{
	"Date", "Symbol", "Company_Name", "Entry_Price", "Entry_Time",
	"Exit_Price", "Exit_Time", "Quantity", "PnL_Dollar", "PnL_Percent",
	"Duration_Minutes", "Scale_Number", "Position_Type",
	"Entry_Reason", "Exit_Reason", "Emotional_State", "Market_Context",
	"Lessons_Learned", "AI_Analysis", "Trade_Grade",
}

// Exporter implements ports.TradeExporter.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportTrades writes the journal rows to the given destination path.
func (e *Exporter) ExportTrades(path string, trades []*domain.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrExportFailed, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write(header)
	for _, t := range trades {
		w.Write([]string{
			t.Date,
			t.Symbol,
			t.CompanyName,
			ftoa(t.EntryPrice),
			formatTime(t.EntryTime),
			ftoa(t.ExitPrice),
			formatTime(t.ExitTime),
			strconv.FormatInt(t.Quantity, 10),
			ftoa(t.PnLDollar),
			ftoa(t.PnLPercent),
			strconv.Itoa(t.DurationMin),
			t.ScaleNumber,
			string(t.PositionType),
			t.EntryReason,
			t.ExitReason,
			t.EmotionalState,
			t.MarketContext,
			t.LessonsLearned,
			t.AIAnalysis,
			string(t.Grade),
		})
	}
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrExportFailed, err)
	}
	return nil
}

// ReadTrades loads an exported journal back into trade records. Only the
// structured fields are recovered; clock-only time columns are re-attached
// to the row's date.
func ReadTrades(path string) ([]*domain.Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrUnreadableInput, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrMalformedInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty journal", ports.ErrMalformedInput)
	}
	if len(rows[0]) < len(header) {
		return nil, fmt.Errorf("%w: expected %d columns, found %d", ports.ErrMalformedInput, len(header), len(rows[0]))
	}

	var trades []*domain.Trade
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			continue
		}
		qty, _ := strconv.ParseInt(row[7], 10, 64)
		duration, _ := strconv.Atoi(row[10])
		trade := &domain.Trade{
			Date:           row[0],
			Symbol:         row[1],
			CompanyName:    row[2],
			EntryPrice:     atof(row[3]),
			EntryTime:      parseRowTime(row[0], row[4]),
			ExitPrice:      atof(row[5]),
			ExitTime:       parseRowTime(row[0], row[6]),
			Quantity:       qty,
			PnLDollar:      atof(row[8]),
			PnLPercent:     atof(row[9]),
			DurationMin:    duration,
			ScaleNumber:    row[11],
			PositionType:   domain.PositionType(row[12]),
			EntryReason:    row[13],
			ExitReason:     row[14],
			EmotionalState: row[15],
			MarketContext:  row[16],
			LessonsLearned: row[17],
			AIAnalysis:     row[18],
			Grade:          domain.TradeGrade(row[19]),
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("15:04:05 MST")
}

func parseRowTime(date, clock string) time.Time {
	if date == "" || date == "Unknown" || clock == "" || clock == "Unknown" {
		return time.Time{}
	}
	t, err := timeparse.Parse(date + "T" + clockOnly(clock))
	if err != nil {
		return time.Time{}
	}
	return t
}

// clockOnly strips a trailing zone abbreviation from "08:27:26 EDT".
func clockOnly(clock string) string {
	if i := len(clock) - 4; i > 0 && clock[i] == ' ' {
		return clock[:i]
	}
	return clock
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func atof(s string) float64 {
	x, _ := strconv.ParseFloat(s, 64)
	return x
}
