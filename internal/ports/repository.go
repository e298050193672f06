package ports

import (
	"context"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
)

// TradeRepository defines the interface for persisting matched journal trades.
type TradeRepository interface {
	// SaveTrade stores a new trade record.
	SaveTrade(ctx context.Context, trade *domain.Trade) error
	// FindBySymbol retrieves the most recent trades for a symbol, up to a limit.
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error)
	// FindByDate retrieves all trades entered on the given date (YYYY-MM-DD).
	FindByDate(ctx context.Context, date string) ([]*domain.Trade, error)
	// UpdateScaleNumber rewrites the scale-leg label of a stored trade.
	UpdateScaleNumber(ctx context.Context, id string, scaleNumber string) error
	// UpdateAnalysis attaches trader commentary and the AI verdict to a stored trade.
	UpdateAnalysis(ctx context.Context, id string, commentary string, analysis *domain.TradeAnalysis) error
	// TotalPnL returns the sum of dollar P&L across all stored trades.
	TotalPnL(ctx context.Context) (float64, error)
}
