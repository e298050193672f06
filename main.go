package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"text/tabwriter"

	"github.com/AadSub19/AI-Trading-Journal/config"
	"github.com/AadSub19/AI-Trading-Journal/internal/adapters/anthropic"
	"github.com/AadSub19/AI-Trading-Journal/internal/adapters/csvexport"
	"github.com/AadSub19/AI-Trading-Journal/internal/adapters/logger"
	"github.com/AadSub19/AI-Trading-Journal/internal/adapters/sqlite"
	"github.com/AadSub19/AI-Trading-Journal/internal/app"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"
)

func main() {
	csvPath := flag.String("orders", "", "Path to the Webull orders CSV export (required)")
	flag.Parse()
	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	var appLogger ports.Logger
	if cfg.LogJSON {
		zl, err := logger.NewZapLogger(cfg.LogLevel)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize logger: %v", err)
		}
		defer func() { _ = zl.Sync() }()
		appLogger = zl
	} else {
		appLogger = logger.NewStdLogger(cfg.LogLevel)
	}
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err) // Also log to stderr
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()
	appLogger.Info(context.Background(), "Database repository initialized")

	// 4. Initialize AI Analyst (Anthropic Adapter), if enabled
	var analyzer ports.TradeAnalyzer
	if cfg.AIEnabled {
		client, err := anthropic.New(anthropic.Config{
			APIKey:    cfg.AnthropicAPIKey,
			Model:     cfg.AnthropicModel,
			MaxTokens: cfg.AnalysisMaxTokens,
			Logger:    appLogger,
		})
		if err != nil {
			appLogger.Error(context.Background(), err, "FATAL: Failed to initialize AI analyst")
			log.Fatalf("FATAL: Failed to initialize AI analyst: %v", err)
		}
		analyzer = client
		appLogger.Info(context.Background(), "AI analyst initialized", map[string]interface{}{"model": cfg.AnthropicModel})
	}

	// 5. Initialize Journal Exporter, if enabled
	var exporter ports.TradeExporter
	if cfg.ExportEnabled {
		exporter = csvexport.NewExporter()
	}

	// 6. Initialize Application Service
	journalService, err := app.NewJournalService(
		cfg,
		appLogger,
		repo,     // Pass the concrete implementation, service expects the interface
		analyzer, // nil when AI is disabled
		exporter, // nil when export is disabled
	)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize journal service")
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}

	// 7. Process the export
	result, err := journalService.Run(context.Background(), *csvPath)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Journal run failed")
		log.Fatalf("FATAL: Journal run failed: %v", err)
	}

	printSummary(result)
}

func printSummary(result *app.RunResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "\n--- Trades ---")
	fmt.Fprintln(w, "Date\tSymbol\tQty\tEntry\tExit\tP&L $\tP&L %\tDur (min)\tScale\tType\tGrade")
	for _, t := range result.Trades {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%s\t%s\t%s\n",
			t.Date, t.Symbol, t.Quantity, t.EntryPrice, t.ExitPrice,
			t.PnLDollar, t.PnLPercent, t.DurationMin, t.ScaleNumber, t.PositionType, t.Grade)
	}

	s := result.Summary
	fmt.Fprintln(w, "\n--- Session Summary ---")
	fmt.Fprintf(w, "Total Trades:\t%d\n", s.TotalTrades)
	fmt.Fprintf(w, "Win Rate:\t%.1f%% (%d W / %d L)\n", s.WinRate*100, s.WinningTrades, s.LosingTrades)
	fmt.Fprintf(w, "Total P&L:\t$%.2f\n", s.TotalPnL)
	fmt.Fprintf(w, "Avg Win / Avg Loss:\t$%.2f / $%.2f\n", s.AvgWin, s.AvgLoss)
	if s.BestTrade != nil && s.WorstTrade != nil {
		fmt.Fprintf(w, "Best / Worst:\t$%.2f (%s) / $%.2f (%s)\n",
			s.BestTrade.PnLDollar, s.BestTrade.Symbol, s.WorstTrade.PnLDollar, s.WorstTrade.Symbol)
	}
	fmt.Fprintf(w, "Avg Duration:\t%.0f min\n", s.AvgDurationMin)
	for _, sym := range s.Symbols() {
		fmt.Fprintf(w, "  %s:\t$%.2f\n", sym, s.PnLBySymbol[sym])
	}

	if d := result.Diagnostics; d != nil && d.Total() > 0 {
		fmt.Fprintln(w, "\n--- Diagnostics ---")
		fmt.Fprintf(w, "Invalid timestamps:\t%d\n", d.InvalidTimestamps)
		fmt.Fprintf(w, "Sells while flat:\t%d\n", d.IgnoredFlatSells)
		fmt.Fprintf(w, "Skipped sells:\t%d\n", d.SkippedSells)
		fmt.Fprintf(w, "Clamped oversells:\t%d\n", d.ClampedOversells)
		fmt.Fprintf(w, "Missing durations:\t%d\n", d.MissingDurations)
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  - %s\n", note)
		}
	}

	if result.SessionAnalysis != "" {
		fmt.Fprintf(w, "\n--- AI Session Review ---\n%s\n", result.SessionAnalysis)
	}
}
