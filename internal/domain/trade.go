package domain

import (
	"fmt"
	"strings"
	"time"
)

// Trade represents one matched exit leg of a round trip. Once emitted it is
// never deleted; the only field ever rewritten is the ScaleNumber
// denominator, patched when the owning entry fully closes.
type Trade struct {
	ID          string    // Unique identifier (UUID)
	Date        string    // Entry date, YYYY-MM-DD ("Unknown" if the entry time was missing)
	Symbol      string    // Instrument symbol
	CompanyName string    // Company name from the broker export
	EntryPrice  float64   // Average cost basis at exit time
	EntryTime   time.Time // Time the position was opened
	ExitPrice   float64   // Fill price of this exit leg
	ExitTime    time.Time // Time of this exit fill
	Quantity    int64     // Quantity closed by this leg
	PnLDollar   float64   // Dollar P&L for this leg, rounded to cents
	PnLPercent  float64   // Percent P&L relative to cost basis, rounded to 2 decimals
	DurationMin int       // Minutes between entry and this exit, never negative

	ScaleNumber  string       // "k/n" label: k-th of n exit legs for this entry
	PositionType PositionType // Full Exit, Scale Out, or Final Exit

	// Filled later by the commentary and AI-analysis collaborators.
	EntryReason    string
	ExitReason     string
	EmotionalState string
	MarketContext  string
	LessonsLearned string
	AIAnalysis     string
	Grade          TradeGrade
}

// SetScaleDenominator rewrites the denominator of the ScaleNumber label,
// keeping the leg index intact. Used for the retroactive correction of
// Scale Out legs once their entry fully closes.
func (t *Trade) SetScaleDenominator(n int) {
	k, _, found := strings.Cut(t.ScaleNumber, "/")
	if !found {
		k = t.ScaleNumber
	}
	t.ScaleNumber = fmt.Sprintf("%s/%d", k, n)
}

// EntryKey identifies the entry this trade closes against. All legs of one
// round trip share the same key.
func (t *Trade) EntryKey() string {
	return fmt.Sprintf("%s@%d", t.Symbol, t.EntryTime.UnixNano())
}

// TradeAnalysis is the AI analyst's verdict on a single trade.
type TradeAnalysis struct {
	Analysis string
	Grade    TradeGrade
}
