package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/leadgrid/leadgrid/internal/engine/geo"
	"github.com/leadgrid/leadgrid/internal/model"
)

// Stats tracks live progress of a run. Fields are atomics so the TUI can
// read them while the scan goroutine writes.
type Stats struct {
	CellsTotal int
	CellsDone  atomic.Int64
	Found      atomic.Int64
	Kept       atomic.Int64
	Errors     atomic.Int64
	RateLimits atomic.Int64
}

// RunOptions provides optional hooks for the scan pipeline.
type RunOptions struct {
	// OnCell is called after each cell finishes (queried or skipped).
	OnCell func(done, total, kept int)
	// SuppressStderr disables the built-in per-cell stderr reporter.
	SuppressStderr bool
	// Stats allows passing an external Stats object for live tracking.
	// If nil, Run creates its own.
	Stats *Stats
}

// Run executes the full scan: plan the grid, then strictly one cell at a
// time: query, filter, merge, pace. Cells run sequentially on purpose; the
// provider rate-limits aggressively and one in-flight crawl per token is
// the sustainable shape. A cell that fails after retries is logged and
// skipped, never fatal — the run always returns whatever was aggregated.
func Run(ctx context.Context, area model.SearchArea, types []string, client *Client, cfg Config, logger *log.Logger, opts *RunOptions) (*model.ResultSet, error) {
	if opts == nil {
		opts = &RunOptions{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	cells := geo.PlanCells(area, cfg.CellSizeKm)
	logger.Printf("PLAN cells=%d radius=%.2fkm cell_size=%.2fkm center=%.4f,%.4f",
		len(cells), area.RadiusKm, cfg.CellSizeKm, area.Lat, area.Lon)

	stats := opts.Stats
	if stats == nil {
		stats = &Stats{}
	}
	stats.CellsTotal = len(cells)

	agg := NewAggregator(area, types)

	// Inter-cell pacing. Burst 1 lets the first cell go immediately; every
	// later cell waits out the delay, and a canceled context unblocks.
	limiter := rate.NewLimiter(rate.Every(cfg.CellDelay), 1)

	startTime := time.Now()
	for i, cell := range cells {
		if err := limiter.Wait(ctx); err != nil {
			return agg.Results(), err
		}

		places, err := client.FetchCell(ctx, cell)
		stats.RateLimits.Store(client.RateLimitCount())
		if err != nil {
			if ctx.Err() != nil {
				return agg.Results(), ctx.Err()
			}
			stats.Errors.Add(1)
			stats.CellsDone.Add(1)
			logger.Printf("SKIP cell=%d/%d lat=[%.4f,%.4f] lon=[%.4f,%.4f] err=%v",
				i+1, len(cells), cell.MinLat, cell.MaxLat, cell.MinLon, cell.MaxLon, err)
			if !opts.SuppressStderr {
				fmt.Fprintf(os.Stderr, "[%d/%d] cell skipped: %v\n", i+1, len(cells), err)
			}
			if opts.OnCell != nil {
				opts.OnCell(i+1, len(cells), 0)
			}
			continue
		}

		kept := agg.Add(places)
		stats.Found.Add(int64(len(places)))
		stats.Kept.Add(int64(kept))
		stats.CellsDone.Add(1)

		logger.Printf("CELL %d/%d found=%d new=%d total=%d",
			i+1, len(cells), len(places), kept, agg.Results().Len())
		if !opts.SuppressStderr {
			fmt.Fprintf(os.Stderr, "[%d/%d] found %d, %d new unique (total: %d)\n",
				i+1, len(cells), len(places), kept, agg.Results().Len())
		}
		if opts.OnCell != nil {
			opts.OnCell(i+1, len(cells), kept)
		}
	}

	logger.Printf("DONE cells=%d found=%d kept=%d errors=%d rate_limits=%d elapsed=%s",
		len(cells), stats.Found.Load(), stats.Kept.Load(),
		stats.Errors.Load(), stats.RateLimits.Load(),
		time.Since(startTime).Truncate(time.Second))

	return agg.Results(), nil
}
