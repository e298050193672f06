package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/AadSub19/AI-Trading-Journal/internal/adapters/csvexport"
	"github.com/AadSub19/AI-Trading-Journal/internal/analytics"
	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
)

func main() {
	journalPath := flag.String("journal", "./data/trading_journal.csv", "Path to an exported journal CSV")
	flag.Parse()

	trades, err := csvexport.ReadTrades(*journalPath)
	if err != nil {
		log.Fatalf("Error reading journal from %s: %v", *journalPath, err)
	}
	if len(trades) == 0 {
		log.Println("No trades found in the journal. Run the journal processor first.")
		return
	}

	summary := analytics.Summarize(trades)

	// Create a tabwriter for formatted output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintf(w, "## Session Analysis: %s\n\n", filepath.Base(*journalPath))
	fmt.Fprintln(w, "Symbol\tTrades\tWinRate\tAvgWin\tAvgLoss\tTotalPnL\t")

	for _, symbol := range summary.Symbols() {
		stats := analytics.Summarize(filterBySymbol(trades, symbol))
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%.2f\t%.2f\t%.2f\t\n",
			symbol,
			stats.TotalTrades,
			stats.WinRate*100,
			stats.AvgWin,
			stats.AvgLoss,
			stats.TotalPnL,
		)
	}
	fmt.Fprintf(w, "ALL\t%d\t%.1f%%\t%.2f\t%.2f\t%.2f\t\n",
		summary.TotalTrades, summary.WinRate*100, summary.AvgWin, summary.AvgLoss, summary.TotalPnL)
	w.Flush()

	fmt.Println("\n## Scale-Out Analysis")
	analyzeScaleOuts(trades)
}

func filterBySymbol(trades []*domain.Trade, symbol string) []*domain.Trade {
	var out []*domain.Trade
	for _, t := range trades {
		if t.Symbol == symbol {
			out = append(out, t)
		}
	}
	return out
}

// analyzeScaleOuts compares how scaled exits performed against single-leg
// exits, which tells you whether partial profit taking is paying for itself.
func analyzeScaleOuts(trades []*domain.Trade) {
	var scaled, full []*domain.Trade
	for _, t := range trades {
		if t.PositionType == domain.FullExit {
			full = append(full, t)
		} else {
			scaled = append(scaled, t)
		}
	}

	fmt.Printf("Single-leg exits: %d trades, $%.2f total P&L\n",
		len(full), analytics.Summarize(full).TotalPnL)
	fmt.Printf("Scaled exit legs:  %d trades, $%.2f total P&L\n",
		len(scaled), analytics.Summarize(scaled).TotalPnL)

	if len(scaled) > 0 {
		var early, final float64
		for _, t := range scaled {
			if t.PositionType == domain.FinalExit {
				final += t.PnLDollar
			} else {
				early += t.PnLDollar
			}
		}
		fmt.Printf("  of which scale-out legs: $%.2f, final exits: $%.2f\n", early, final)
	}
}
