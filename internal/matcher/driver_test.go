package matcher

import (
	"context"
	"testing"
	"time"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
)

func TestMatchAllGroupsBySymbol(t *testing.T) {
	fills := []*domain.Fill{
		fill("BBBB", domain.Buy, 50, 20.00, at(2)),
		fill("AAAA", domain.Buy, 100, 10.00, at(0)),
		fill("BBBB", domain.Sell, 50, 21.00, at(12)),
		fill("AAAA", domain.Sell, 100, 11.00, at(10)),
	}

	d := NewDriver(&mockLogger{}, 4)
	trades, diags := d.MatchAll(context.Background(), fills)

	if len(trades) != 2 {
		t.Fatalf("Expected 2 trades, got %d", len(trades))
	}
	// Merged output is ordered by symbol.
	if trades[0].Symbol != "AAAA" || trades[1].Symbol != "BBBB" {
		t.Errorf("Expected trades ordered AAAA, BBBB; got %s, %s", trades[0].Symbol, trades[1].Symbol)
	}
	if trades[0].PnLDollar != 100.00 {
		t.Errorf("Expected AAAA pnl 100.00, got %v", trades[0].PnLDollar)
	}
	if trades[1].PnLDollar != 50.00 {
		t.Errorf("Expected BBBB pnl 50.00, got %v", trades[1].PnLDollar)
	}
	if diags.Total() != 0 {
		t.Errorf("Expected no diagnostics, got %v", diags.Notes)
	}
}

func TestMatchAllSortsOutOfOrderFills(t *testing.T) {
	// The sell arrives before the buy in the raw stream; the driver must
	// sort by time before feeding the matcher.
	fills := []*domain.Fill{
		fill("AAAA", domain.Sell, 100, 11.00, at(10)),
		fill("AAAA", domain.Buy, 100, 10.00, at(0)),
	}

	d := NewDriver(&mockLogger{}, 1)
	trades, _ := d.MatchAll(context.Background(), fills)

	if len(trades) != 1 {
		t.Fatalf("Expected 1 trade after sorting, got %d", len(trades))
	}
	if trades[0].DurationMin != 10 {
		t.Errorf("Expected duration 10, got %d", trades[0].DurationMin)
	}
}

func TestMatchAllDropsMissingTimestamps(t *testing.T) {
	fills := []*domain.Fill{
		fill("AAAA", domain.Buy, 100, 10.00, at(0)),
		fill("AAAA", domain.Sell, 100, 11.00, time.Time{}),
		fill("AAAA", domain.Sell, 100, 11.00, at(10)),
	}

	d := NewDriver(&mockLogger{}, 2)
	trades, diags := d.MatchAll(context.Background(), fills)

	if diags.InvalidTimestamps != 1 {
		t.Errorf("Expected 1 dropped timestamp, got %d", diags.InvalidTimestamps)
	}
	if len(trades) != 1 {
		t.Fatalf("Expected 1 trade, got %d", len(trades))
	}
	if trades[0].Quantity != 100 {
		t.Errorf("Expected exit of 100, got %d", trades[0].Quantity)
	}
}

func TestMatchAllSkipsUnfilledRows(t *testing.T) {
	cancelled := fill("AAAA", domain.Buy, 500, 9.00, at(1))
	cancelled.Status = domain.StatusCancelled

	fills := []*domain.Fill{
		fill("AAAA", domain.Buy, 100, 10.00, at(0)),
		cancelled,
		fill("AAAA", domain.Sell, 100, 11.00, at(10)),
	}

	d := NewDriver(&mockLogger{}, 2)
	trades, _ := d.MatchAll(context.Background(), fills)

	if len(trades) != 1 {
		t.Fatalf("Expected 1 trade, got %d", len(trades))
	}
	if trades[0].EntryPrice != 10.00 {
		t.Errorf("Expected cancelled buy excluded from cost basis, got entry %v", trades[0].EntryPrice)
	}
}

func TestMatchAllManySymbolsParallel(t *testing.T) {
	var fills []*domain.Fill
	symbols := []string{"AAAA", "BBBB", "CCCC", "DDDD", "EEEE", "FFFF", "GGGG", "HHHH"}
	for i, sym := range symbols {
		base := float64(10 + i)
		fills = append(fills,
			fill(sym, domain.Buy, 100, base, at(i)),
			fill(sym, domain.Sell, 100, base+1, at(i+30)),
		)
	}

	d := NewDriver(&mockLogger{}, 4)
	trades, diags := d.MatchAll(context.Background(), fills)

	if len(trades) != len(symbols) {
		t.Fatalf("Expected %d trades, got %d", len(symbols), len(trades))
	}
	for i, tr := range trades {
		if tr.Symbol != symbols[i] {
			t.Errorf("Expected trade %d for %s, got %s", i, symbols[i], tr.Symbol)
		}
		if tr.PnLDollar != 100.00 {
			t.Errorf("Expected pnl 100.00 for %s, got %v", tr.Symbol, tr.PnLDollar)
		}
		if tr.DurationMin != 30 {
			t.Errorf("Expected duration 30 for %s, got %d", tr.Symbol, tr.DurationMin)
		}
	}
	if diags.Total() != 0 {
		t.Errorf("Expected clean run, got diagnostics %v", diags.Notes)
	}
}
