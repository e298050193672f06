package analytics

import (
	"testing"
	"time"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
)

func TestSummarize(t *testing.T) {
	now := time.Now()
	trades := []*domain.Trade{
		{
			Symbol:      "AAPL",
			PnLDollar:   1010.00,
			DurationMin: 19,
			EntryTime:   now.Add(-2 * time.Hour),
			ExitTime:    now.Add(-100 * time.Minute),
		},
		{
			Symbol:      "TSLA",
			PnLDollar:   -250.00,
			DurationMin: 45,
			EntryTime:   now.Add(-90 * time.Minute),
			ExitTime:    now.Add(-45 * time.Minute),
		},
		{
			Symbol:      "AAPL",
			PnLDollar:   120.00,
			DurationMin: 8,
			EntryTime:   now.Add(-40 * time.Minute),
			ExitTime:    now.Add(-32 * time.Minute),
		},
	}

	summary := Summarize(trades)

	if summary.TotalTrades != 3 {
		t.Errorf("Expected 3 total trades, got %d", summary.TotalTrades)
	}
	if summary.WinningTrades != 2 || summary.LosingTrades != 1 {
		t.Errorf("Expected 2 wins / 1 loss, got %d / %d", summary.WinningTrades, summary.LosingTrades)
	}
	if summary.TotalPnL != 880.00 {
		t.Errorf("Expected total pnl 880.00, got %v", summary.TotalPnL)
	}
	wantWinRate := 2.0 / 3.0
	if summary.WinRate != wantWinRate {
		t.Errorf("Expected win rate %v, got %v", wantWinRate, summary.WinRate)
	}
	wantAvgDuration := 24.0
	if summary.AvgDurationMin != wantAvgDuration {
		t.Errorf("Expected avg duration %v, got %v", wantAvgDuration, summary.AvgDurationMin)
	}
	if summary.AvgWin != 565.00 {
		t.Errorf("Expected avg win 565.00, got %v", summary.AvgWin)
	}
	if summary.AvgLoss != -250.00 {
		t.Errorf("Expected avg loss -250.00, got %v", summary.AvgLoss)
	}
	if summary.BestTrade == nil || summary.BestTrade.PnLDollar != 1010.00 {
		t.Errorf("Expected best trade pnl 1010.00, got %+v", summary.BestTrade)
	}
	if summary.WorstTrade == nil || summary.WorstTrade.PnLDollar != -250.00 {
		t.Errorf("Expected worst trade pnl -250.00, got %+v", summary.WorstTrade)
	}
	if summary.PnLBySymbol["AAPL"] != 1130.00 {
		t.Errorf("Expected AAPL pnl 1130.00, got %v", summary.PnLBySymbol["AAPL"])
	}

	symbols := summary.Symbols()
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "TSLA" {
		t.Errorf("Expected symbols ordered by pnl [AAPL TSLA], got %v", symbols)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalTrades != 0 || summary.TotalPnL != 0 || summary.WinRate != 0 {
		t.Errorf("Expected zeroed summary for no trades, got %+v", summary)
	}
	if len(summary.Symbols()) != 0 {
		t.Errorf("Expected no symbols, got %v", summary.Symbols())
	}
}
