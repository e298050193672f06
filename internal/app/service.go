package app

import (
	"context"
	"fmt"
	"os"

	"github.com/AadSub19/AI-Trading-Journal/config"
	"github.com/AadSub19/AI-Trading-Journal/internal/analytics"
	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
	"github.com/AadSub19/AI-Trading-Journal/internal/matcher"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"
	"github.com/AadSub19/AI-Trading-Journal/internal/webull"
)

// JournalService orchestrates one journal run: parse the broker export,
// reconstruct round-trip trades, aggregate the session, then hand the result
// to the optional AI, persistence, and export collaborators. Collaborator
// failures are logged and skipped; only an unreadable export fails the run.
type JournalService struct {
	cfg      *config.Config
	logger   ports.Logger
	repo     ports.TradeRepository
	analyzer ports.TradeAnalyzer
	exporter ports.TradeExporter
	parser   *webull.Parser
	driver   *matcher.Driver
}

// NewJournalService creates a new application service instance. The
// repository, analyzer, and exporter are optional collaborators; nil disables
// the corresponding step.
func NewJournalService(
	cfg *config.Config,
	logger ports.Logger,
	repo ports.TradeRepository,
	analyzer ports.TradeAnalyzer,
	exporter ports.TradeExporter,
) (*JournalService, error) {
	if cfg == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	return &JournalService{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		analyzer: analyzer,
		exporter: exporter,
		parser:   webull.NewParser(logger),
		driver:   matcher.NewDriver(logger, cfg.MatcherParallelism),
	}, nil
}

// RunResult is everything one journal run produced.
type RunResult struct {
	Trades          []*domain.Trade
	Summary         *analytics.SessionSummary
	Diagnostics     *matcher.Diagnostics
	ParseStats      *webull.ParseStats
	SessionAnalysis string
}

// Run processes one broker export end to end.
func (s *JournalService) Run(ctx context.Context, csvPath string) (*RunResult, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrUnreadableInput, err)
	}
	defer f.Close()

	fills, stats, err := s.parser.ParseOrders(ctx, f)
	if err != nil {
		return nil, err
	}

	trades, diags := s.driver.MatchAll(ctx, fills)
	summary := analytics.Summarize(trades)
	s.logger.Info(ctx, "Session matched", map[string]interface{}{
		"trades": summary.TotalTrades, "totalPnL": summary.TotalPnL, "winRate": summary.WinRate,
	})

	result := &RunResult{
		Trades:      trades,
		Summary:     summary,
		Diagnostics: diags,
		ParseStats:  stats,
	}

	s.analyzeTrades(ctx, result)
	s.persistTrades(ctx, trades)
	s.exportTrades(ctx, trades)

	return result, nil
}

// analyzeTrades attaches per-trade AI verdicts and a session review. Any
// analyst failure leaves the affected trade un-graded and moves on.
func (s *JournalService) analyzeTrades(ctx context.Context, result *RunResult) {
	if s.analyzer == nil || len(result.Trades) == 0 {
		return
	}
	for _, trade := range result.Trades {
		analysis, err := s.analyzer.AnalyzeTrade(ctx, trade, trade.EntryReason)
		if err != nil {
			s.logger.Error(ctx, err, "Trade analysis failed", map[string]interface{}{
				"symbol": trade.Symbol, "trade": trade.ID,
			})
			continue
		}
		trade.AIAnalysis = analysis.Analysis
		trade.Grade = analysis.Grade
	}

	session, err := s.analyzer.AnalyzeSession(ctx, result.Trades)
	if err != nil {
		s.logger.Error(ctx, err, "Session analysis failed")
		return
	}
	result.SessionAnalysis = session
}

func (s *JournalService) persistTrades(ctx context.Context, trades []*domain.Trade) {
	if s.repo == nil {
		return
	}
	saved := 0
	for _, trade := range trades {
		if err := s.repo.SaveTrade(ctx, trade); err != nil {
			s.logger.Error(ctx, err, "Failed to persist trade", map[string]interface{}{
				"symbol": trade.Symbol, "trade": trade.ID,
			})
			continue
		}
		saved++
	}
	s.logger.Info(ctx, "Trades persisted", map[string]interface{}{"saved": saved, "total": len(trades)})
}

func (s *JournalService) exportTrades(ctx context.Context, trades []*domain.Trade) {
	if s.exporter == nil || len(trades) == 0 {
		return
	}
	if err := s.exporter.ExportTrades(s.cfg.ExportPath, trades); err != nil {
		s.logger.Error(ctx, err, "Journal export failed", map[string]interface{}{
			"path": s.cfg.ExportPath,
		})
		return
	}
	s.logger.Info(ctx, "Journal exported", map[string]interface{}{"path": s.cfg.ExportPath})
}
