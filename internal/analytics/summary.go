package analytics

import (
	"sort"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
)

// SessionSummary holds aggregate statistics for one batch of matched trades.
type SessionSummary struct {
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
	WinRate        float64
	TotalPnL       float64
	AvgDurationMin float64
	AvgWin         float64
	AvgLoss        float64
	BestTrade      *domain.Trade
	WorstTrade     *domain.Trade
	PnLBySymbol    map[string]float64
}

// Summarize computes session-level statistics from the emitted trade list.
func Summarize(trades []*domain.Trade) *SessionSummary {
	summary := &SessionSummary{
		PnLBySymbol: make(map[string]float64),
	}
	if len(trades) == 0 {
		return summary
	}

	var totalDuration int
	for _, trade := range trades {
		summary.TotalTrades++
		summary.TotalPnL += trade.PnLDollar
		summary.PnLBySymbol[trade.Symbol] += trade.PnLDollar
		totalDuration += trade.DurationMin

		if trade.PnLDollar > 0 {
			summary.WinningTrades++
			summary.AvgWin = (summary.AvgWin*float64(summary.WinningTrades-1) + trade.PnLDollar) / float64(summary.WinningTrades)
		} else {
			summary.LosingTrades++
			summary.AvgLoss = (summary.AvgLoss*float64(summary.LosingTrades-1) + trade.PnLDollar) / float64(summary.LosingTrades)
		}

		if summary.BestTrade == nil || trade.PnLDollar > summary.BestTrade.PnLDollar {
			summary.BestTrade = trade
		}
		if summary.WorstTrade == nil || trade.PnLDollar < summary.WorstTrade.PnLDollar {
			summary.WorstTrade = trade
		}
	}

	summary.WinRate = float64(summary.WinningTrades) / float64(summary.TotalTrades)
	summary.AvgDurationMin = float64(totalDuration) / float64(summary.TotalTrades)
	return summary
}

// Symbols returns the symbols of the session sorted by descending P&L.
func (s *SessionSummary) Symbols() []string {
	symbols := make([]string, 0, len(s.PnLBySymbol))
	for symbol := range s.PnLBySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool {
		if s.PnLBySymbol[symbols[i]] != s.PnLBySymbol[symbols[j]] {
			return s.PnLBySymbol[symbols[i]] > s.PnLBySymbol[symbols[j]]
		}
		return symbols[i] < symbols[j]
	})
	return symbols
}
