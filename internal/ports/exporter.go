package ports

import "github.com/AadSub19/AI-Trading-Journal/internal/domain"

// TradeExporter defines the interface to the spreadsheet-export collaborator.
// The exporter owns the file format; the core only hands it the trade list.
type TradeExporter interface {
	// ExportTrades writes the journal rows to the given destination path.
	ExportTrades(path string, trades []*domain.Trade) error
}
