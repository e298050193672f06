package matcher

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"
)

// Driver partitions filled orders by symbol and runs one Matcher per symbol.
// Symbols are fully independent, so matching fans out across goroutines with
// per-symbol buffers merged after all symbol tasks complete.
type Driver struct {
	logger      ports.Logger
	parallelism int
}

// NewDriver creates a driver. A non-positive parallelism defaults to the
// number of CPUs.
func NewDriver(logger ports.Logger, parallelism int) *Driver {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	return &Driver{logger: logger, parallelism: parallelism}
}

// MatchAll reconstructs trades from the whole fill batch. Rows without a
// usable timestamp are dropped (and counted) before matching; each symbol's
// remaining fills are sorted by time and fed to a fresh Matcher. The merged
// trade list is ordered by symbol, then exit time, for deterministic output.
func (d *Driver) MatchAll(ctx context.Context, fills []*domain.Fill) ([]*domain.Trade, *Diagnostics) {
	combined := &Diagnostics{}

	bySymbol := make(map[string][]*domain.Fill)
	var symbols []string
	for _, fill := range fills {
		if fill.Status != domain.StatusFilled {
			continue
		}
		if !fill.HasTime() {
			combined.InvalidTimestamps++
			combined.Note("%s: %s of %d dropped, missing timestamp", fill.Symbol, fill.Side, fill.Quantity)
			continue
		}
		if _, seen := bySymbol[fill.Symbol]; !seen {
			symbols = append(symbols, fill.Symbol)
		}
		bySymbol[fill.Symbol] = append(bySymbol[fill.Symbol], fill)
	}
	sort.Strings(symbols)

	type symbolResult struct {
		trades []*domain.Trade
		diags  *Diagnostics
	}
	results := make([]symbolResult, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			symbolFills := bySymbol[symbol]
			sort.SliceStable(symbolFills, func(a, b int) bool {
				return symbolFills[a].FilledTime.Before(symbolFills[b].FilledTime)
			})
			m := New(symbol, d.logger)
			results[i].trades, results[i].diags = m.Match(gctx, symbolFills)
			return nil
		})
	}
	// Matchers never fail; Wait only synchronizes the fan-in.
	_ = g.Wait()

	var trades []*domain.Trade
	for _, res := range results {
		trades = append(trades, res.trades...)
		combined.Merge(res.diags)
	}

	d.logger.Info(ctx, "Matching pass complete", map[string]interface{}{
		"symbols": len(symbols), "trades": len(trades), "incidents": combined.Total(),
	})
	return trades, combined
}
