// Package matcher reconstructs round-trip trades from a time-ordered stream
// of brokerage fills. A Matcher is a per-symbol state machine over a single
// long position: Buys open or average up, Sells emit exit legs, and the
// scale-leg denominator of earlier legs is rewritten in place once the
// position fully closes.
package matcher

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"
)

// Matcher matches fills for exactly one symbol. Fills must arrive in
// non-decreasing timestamp order; the driver guarantees that.
type Matcher struct {
	symbol string
	logger ports.Logger

	pos   domain.Position
	diags *Diagnostics

	// trades is the arena of emitted legs; legs maps each entry key to the
	// arena indices of its Scale Out legs so the final exit can patch their
	// denominators without searching the whole output.
	trades []*domain.Trade
	legs   map[int64][]int
}

// New creates a matcher for one symbol in the flat state.
func New(symbol string, logger ports.Logger) *Matcher {
	return &Matcher{
		symbol: symbol,
		logger: logger,
		diags:  &Diagnostics{},
		legs:   make(map[int64][]int),
	}
}

// Match consumes the symbol's fills in order and returns the emitted trades
// together with the diagnostics collected along the way. It never returns an
// error: every unusable fill is skipped, counted, and processing continues.
func (m *Matcher) Match(ctx context.Context, fills []*domain.Fill) ([]*domain.Trade, *Diagnostics) {
	for _, fill := range fills {
		switch fill.Side {
		case domain.Buy:
			m.applyBuy(ctx, fill)
		case domain.Sell:
			m.applySell(ctx, fills, fill)
		default:
			m.diags.Note("%s: unknown side %q ignored", m.symbol, fill.Side)
		}
	}
	return m.trades, m.diags
}

func (m *Matcher) applyBuy(ctx context.Context, fill *domain.Fill) {
	if !m.pos.IsOpen() {
		// FLAT -> OPEN
		m.pos.Quantity = fill.Quantity
		m.pos.AvgCost = fill.AvgPrice
		m.pos.EntryTime = fill.FilledTime
		m.pos.EntryFills = 1
		m.logger.Debug(ctx, "Position opened", map[string]interface{}{
			"symbol": m.symbol, "quantity": fill.Quantity, "avgCost": fill.AvgPrice,
		})
		return
	}

	// OPEN -> OPEN: average up.
	totalCost := float64(m.pos.Quantity)*m.pos.AvgCost + float64(fill.Quantity)*fill.AvgPrice
	m.pos.Quantity += fill.Quantity
	m.pos.AvgCost = totalCost / float64(m.pos.Quantity)
	m.pos.EntryFills++
	m.logger.Debug(ctx, "Position increased", map[string]interface{}{
		"symbol": m.symbol, "added": fill.Quantity, "quantity": m.pos.Quantity, "avgCost": m.pos.AvgCost,
	})
}

func (m *Matcher) applySell(ctx context.Context, fills []*domain.Fill, fill *domain.Fill) {
	if !m.pos.IsOpen() {
		// A sell while flat carries no matchable entry; ignore it entirely.
		m.diags.IgnoredFlatSells++
		m.diags.Note("%s: sell of %d while flat ignored", m.symbol, fill.Quantity)
		m.logger.Warn(ctx, "Sell while flat ignored", map[string]interface{}{
			"symbol": m.symbol, "quantity": fill.Quantity,
		})
		return
	}
	if m.pos.AvgCost <= 0 {
		// Undefined percent P&L; data-quality error, not fatal.
		m.diags.SkippedSells++
		m.diags.Note("%s: sell skipped, zero or missing avg cost", m.symbol)
		m.logger.Error(ctx, ports.ErrInvalidRequest, "Sell skipped: zero or missing avg cost", map[string]interface{}{
			"symbol": m.symbol, "quantity": fill.Quantity,
		})
		return
	}

	exitQty := fill.Quantity
	if exitQty > m.pos.Quantity {
		// Oversell is clamped; the excess quantity is dropped rather than
		// opening an implicit short.
		m.diags.ClampedOversells++
		m.diags.Note("%s: oversell of %d clamped to %d", m.symbol, exitQty, m.pos.Quantity)
		exitQty = m.pos.Quantity
	}

	trade := m.buildTrade(fill, exitQty)
	key := m.pos.EntryTime.UnixNano()
	k := len(m.legs[key]) + 1
	remaining := m.pos.Quantity - exitQty

	if remaining > 0 {
		trade.PositionType = domain.ScaleOut
		trade.ScaleNumber = fmt.Sprintf("%d/%d", k, m.estimateTotalExits(fills))
	} else {
		if k == 1 {
			trade.PositionType = domain.FullExit
		} else {
			trade.PositionType = domain.FinalExit
		}
		trade.ScaleNumber = fmt.Sprintf("%d/%d", k, k)
		// The true leg count is only known now; patch every earlier Scale
		// Out leg of this entry in place.
		for _, i := range m.legs[key] {
			m.trades[i].SetScaleDenominator(k)
		}
	}

	m.trades = append(m.trades, trade)
	m.legs[key] = append(m.legs[key], len(m.trades)-1)

	m.logger.Info(ctx, "Exit matched", map[string]interface{}{
		"symbol": m.symbol, "quantity": exitQty, "pnl": trade.PnLDollar,
		"scale": trade.ScaleNumber, "type": string(trade.PositionType),
	})

	m.pos.Quantity = remaining
	if remaining == 0 {
		m.pos.Reset()
	}
}

// buildTrade computes the P&L, duration, and labeling for one exit leg.
func (m *Matcher) buildTrade(fill *domain.Fill, exitQty int64) *domain.Trade {
	price := decimal.NewFromFloat(fill.AvgPrice)
	cost := decimal.NewFromFloat(m.pos.AvgCost)
	qty := decimal.NewFromInt(exitQty)

	pnlDollar, _ := price.Sub(cost).Mul(qty).Round(2).Float64()
	pnlPercent, _ := price.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	entryPrice, _ := cost.Round(2).Float64()

	duration := 0
	if !m.pos.EntryTime.IsZero() && fill.HasTime() {
		if mins := int(math.Round(fill.FilledTime.Sub(m.pos.EntryTime).Minutes())); mins > 0 {
			duration = mins
		}
	} else {
		m.diags.MissingDurations++
		m.diags.Note("%s: duration unknown, entry or exit timestamp missing", m.symbol)
	}

	date := "Unknown"
	if !m.pos.EntryTime.IsZero() {
		date = m.pos.EntryTime.Format("2006-01-02")
	}

	company := fill.CompanyName
	if company == "" {
		company = m.symbol
	}

	return &domain.Trade{
		ID:          uuid.NewString(),
		Date:        date,
		Symbol:      m.symbol,
		CompanyName: company,
		EntryPrice:  entryPrice,
		EntryTime:   m.pos.EntryTime,
		ExitPrice:   fill.AvgPrice,
		ExitTime:    fill.FilledTime,
		Quantity:    exitQty,
		PnLDollar:   pnlDollar,
		PnLPercent:  pnlPercent,
		DurationMin: duration,
	}
}

// estimateTotalExits guesses how many exit legs the open entry will have
// while its true total is not yet knowable: the count of the symbol's Sell
// fills after the entry time, minimum 1. Purely a display-time placeholder;
// the definitive denominator is patched in at the final exit.
func (m *Matcher) estimateTotalExits(fills []*domain.Fill) int {
	if m.pos.EntryTime.IsZero() {
		return 1
	}
	count := 0
	for _, f := range fills {
		if f.Side == domain.Sell && f.HasTime() && f.FilledTime.After(m.pos.EntryTime) {
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}
