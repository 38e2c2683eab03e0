package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/leadgrid/leadgrid/internal/model"
)

// RateLimitError indicates the provider is rate limiting us.
type RateLimitError struct {
	StatusCode int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status %d)", e.StatusCode)
}

// Client issues one place-search request per grid cell against the Apify
// actor endpoint. It retries transient failures a bounded number of times
// and backs off on rate limits without consuming the retry budget.
type Client struct {
	http       *http.Client
	cfg        Config
	token      string
	logger     *log.Logger
	rateLimits atomic.Int64
}

func NewClient(token string, cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		cfg:    cfg,
		token:  token,
		logger: logger,
	}
}

// cellPayload is the actor input for one cell query. Enrichment is disabled
// across the board; only the listing fields are needed and detail pages slow
// the crawl down considerably.
type cellPayload struct {
	AllPlacesNoSearchAction        string            `json:"allPlacesNoSearchAction"`
	CustomGeolocation              *geojson.Geometry `json:"customGeolocation"`
	IncludeWebResults              bool              `json:"includeWebResults"`
	Language                       string            `json:"language"`
	MaxCrawledPlacesPerSearch      int               `json:"maxCrawledPlacesPerSearch"`
	MaxImages                      int               `json:"maxImages"`
	ScrapeContacts                 bool              `json:"scrapeContacts"`
	ScrapeDirectories              bool              `json:"scrapeDirectories"`
	ScrapeImageAuthors             bool              `json:"scrapeImageAuthors"`
	ScrapePlaceDetailPage          bool              `json:"scrapePlaceDetailPage"`
	ScrapeReviewsPersonalData      bool              `json:"scrapeReviewsPersonalData"`
	ScrapeTableReservationProvider bool              `json:"scrapeTableReservationProvider"`
	SkipClosedPlaces               bool              `json:"skipClosedPlaces"`
}

// cellPolygon builds the provider search area: a closed clockwise ring of
// the cell corners, starting and ending at the top-right.
func cellPolygon(cell model.Cell) orb.Polygon {
	ring := orb.Ring{
		{cell.MaxLon, cell.MaxLat}, // top-right
		{cell.MaxLon, cell.MinLat}, // bottom-right
		{cell.MinLon, cell.MinLat}, // bottom-left
		{cell.MinLon, cell.MaxLat}, // top-left
		{cell.MaxLon, cell.MaxLat},
	}
	return orb.Polygon{ring}
}

// FetchCell queries the provider for every place inside the cell.
// A nil error with an empty slice means the provider was reachable and the
// cell is genuinely empty. An error means the cell was abandoned after the
// retry budget ran out; the caller skips it and continues.
func (c *Client) FetchCell(ctx context.Context, cell model.Cell) ([]model.Place, error) {
	body, err := json.Marshal(cellPayload{
		AllPlacesNoSearchAction:   "all_places_no_search_ocr",
		CustomGeolocation:         geojson.NewGeometry(cellPolygon(cell)),
		Language:                  c.cfg.Language,
		MaxCrawledPlacesPerSearch: c.cfg.MaxPlacesPerCell,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; {
		places, err := c.doSearch(ctx, body)
		if err == nil {
			return places, nil
		}
		lastErr = err

		var rl *RateLimitError
		if errors.As(err, &rl) {
			// Rate limiting is not a cell failure: wait it out and try
			// again without touching the attempt budget.
			c.rateLimits.Add(1)
			c.logger.Printf("RATE_LIMIT status=%d wait=%s", rl.StatusCode, c.cfg.RateLimitDelay)
			if err := sleepCtx(ctx, c.cfg.RateLimitDelay); err != nil {
				return nil, err
			}
			continue
		}

		attempt++
		c.logger.Printf("RETRY attempt=%d/%d err=%v", attempt, c.cfg.MaxAttempts, err)
		if attempt < c.cfg.MaxAttempts {
			if err := sleepCtx(ctx, c.cfg.RetryDelay); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("cell abandoned after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

// RateLimitCount returns how many rate-limit responses have been seen so far.
func (c *Client) RateLimitCount() int64 {
	return c.rateLimits.Load()
}

func (c *Client) doSearch(ctx context.Context, body []byte) ([]model.Place, error) {
	reqURL := c.cfg.BaseURL + "?" + url.Values{"token": {c.token}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return nil, &RateLimitError{StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var places []model.Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return places, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
