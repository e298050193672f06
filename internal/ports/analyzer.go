package ports

import (
	"context"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
)

// TradeAnalyzer defines the interface to the external AI-analysis collaborator.
type TradeAnalyzer interface {
	// AnalyzeTrade reviews one trade, optionally informed by the trader's own
	// commentary, and returns the analysis text with a letter grade.
	AnalyzeTrade(ctx context.Context, trade *domain.Trade, commentary string) (*domain.TradeAnalysis, error)
	// AnalyzeSession reviews a whole session's trade list for patterns.
	AnalyzeSession(ctx context.Context, trades []*domain.Trade) (string, error)
}
