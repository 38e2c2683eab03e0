package scraper_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgrid/leadgrid/internal/engine/scraper"
	"github.com/leadgrid/leadgrid/internal/model"
)

// runConfig covers a 1 km radius with four 1.4 km cells so the grid,
// dedup, and radius filter all get exercised without real delays.
func runConfig(serverURL string) scraper.Config {
	cfg := testConfig(serverURL)
	cfg.CellSizeKm = 1.4
	return cfg
}

func TestRun(t *testing.T) {
	t.Parallel()

	area := model.SearchArea{Lat: 40.7128, Lon: -74.0060, RadiusKm: 1}

	t.Run("keeps in-radius places and drops the rest", func(t *testing.T) {
		t.Parallel()

		// "A" sits 0.5 km from the center, "B" 2 km out. Every cell
		// reports both, as overlapping provider crawls do.
		body := fmt.Sprintf(`[
			{"placeId": "A", "title": "Near Cafe", "location": {"lat": %.6f, "lng": %.6f}},
			{"placeId": "B", "title": "Far Cafe", "location": {"lat": %.6f, "lng": %.6f}}
		]`, area.Lat+0.5/111.32, area.Lon, area.Lat+2/111.32, area.Lon)

		var calls atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(body))
		}))
		defer server.Close()

		cfg := runConfig(server.URL)
		client := scraper.NewClient("tok", cfg, nil)
		stats := &scraper.Stats{}

		results, err := scraper.Run(context.Background(), area, nil, client, cfg, nil,
			&scraper.RunOptions{SuppressStderr: true, Stats: stats})
		require.NoError(t, err)

		assert.Equal(t, 1, results.Len())
		assert.True(t, results.Has("A"))
		assert.False(t, results.Has("B"))

		assert.Equal(t, 4, stats.CellsTotal)
		assert.Equal(t, int64(4), stats.CellsDone.Load())
		assert.Equal(t, int64(4), calls.Load())
		assert.Equal(t, int64(8), stats.Found.Load())
		assert.Equal(t, int64(1), stats.Kept.Load())
		assert.Zero(t, stats.Errors.Load())
	})

	t.Run("overlapping cells yield one record per identifier", func(t *testing.T) {
		t.Parallel()

		body := fmt.Sprintf(`[{"placeId": "X", "title": "Twice Seen", "location": {"lat": %.6f, "lng": %.6f}}]`,
			area.Lat, area.Lon)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		defer server.Close()

		cfg := runConfig(server.URL)
		client := scraper.NewClient("tok", cfg, nil)

		results, err := scraper.Run(context.Background(), area, nil, client, cfg, nil,
			&scraper.RunOptions{SuppressStderr: true})
		require.NoError(t, err)
		assert.Equal(t, 1, results.Len())
	})

	t.Run("failed cells are skipped, not fatal", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cfg := runConfig(server.URL)
		cfg.MaxAttempts = 1
		client := scraper.NewClient("tok", cfg, nil)
		stats := &scraper.Stats{}

		results, err := scraper.Run(context.Background(), area, nil, client, cfg, nil,
			&scraper.RunOptions{SuppressStderr: true, Stats: stats})
		require.NoError(t, err)

		assert.Zero(t, results.Len())
		assert.Equal(t, int64(4), stats.Errors.Load())
		assert.Equal(t, int64(4), stats.CellsDone.Load())
	})

	t.Run("applies the type filter end to end", func(t *testing.T) {
		t.Parallel()

		body := fmt.Sprintf(`[
			{"placeId": "P", "title": "Pipes R Us", "categories": ["Plumber"], "location": {"lat": %.6f, "lng": %.6f}},
			{"placeId": "E", "title": "Sparky", "categories": ["Electrician"], "location": {"lat": %.6f, "lng": %.6f}}
		]`, area.Lat, area.Lon, area.Lat, area.Lon)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		defer server.Close()

		cfg := runConfig(server.URL)
		client := scraper.NewClient("tok", cfg, nil)

		results, err := scraper.Run(context.Background(), area, []string{"plumber"}, client, cfg, nil,
			&scraper.RunOptions{SuppressStderr: true})
		require.NoError(t, err)
		assert.True(t, results.Has("P"))
		assert.False(t, results.Has("E"))
	})

	t.Run("reports per-cell progress", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("[]"))
		}))
		defer server.Close()

		cfg := runConfig(server.URL)
		client := scraper.NewClient("tok", cfg, nil)

		var reports []int
		_, err := scraper.Run(context.Background(), area, nil, client, cfg, nil,
			&scraper.RunOptions{
				SuppressStderr: true,
				OnCell: func(done, total, kept int) {
					assert.Equal(t, 4, total)
					reports = append(reports, done)
				},
			})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, reports)
	})

	t.Run("canceled context stops the run", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("[]"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := runConfig(server.URL)
		client := scraper.NewClient("tok", cfg, nil)

		results, err := scraper.Run(ctx, area, nil, client, cfg, nil,
			&scraper.RunOptions{SuppressStderr: true})
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, results.Len())
	})
}
