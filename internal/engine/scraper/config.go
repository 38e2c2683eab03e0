package scraper

import "time"

// Default Apify actor endpoint for Google Maps place crawling. The
// run-sync variant blocks until the run finishes and returns the dataset
// items directly.
const defaultActorURL = "https://api.apify.com/v2/acts/compass~crawler-google-places/run-sync-get-dataset-items"

// Config carries every tunable of the scan engine. Tests inject small
// values (zero delays, tiny cells) instead of touching globals.
type Config struct {
	// BaseURL is the provider endpoint queried once per cell.
	BaseURL string

	// CellSizeKm is the edge length of each grid cell.
	CellSizeKm float64

	// CellDelay paces consecutive cell queries. No delay after the last cell.
	CellDelay time.Duration

	// MaxAttempts bounds retries of a cell query after timeout or
	// network-layer failures. Rate-limit responses do not consume attempts.
	MaxAttempts int

	// RetryDelay is the pause between transient-failure attempts.
	RetryDelay time.Duration

	// RateLimitDelay is the pause after an HTTP 429 before retrying.
	RateLimitDelay time.Duration

	// RequestTimeout bounds one provider round-trip, including the
	// provider-side crawl of the cell.
	RequestTimeout time.Duration

	// MaxPlacesPerCell caps results per cell query (provider limit 500).
	MaxPlacesPerCell int

	// Language is the provider's result language.
	Language string
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		BaseURL:          defaultActorURL,
		CellSizeKm:       2,
		CellDelay:        2 * time.Second,
		MaxAttempts:      3,
		RetryDelay:       5 * time.Second,
		RateLimitDelay:   60 * time.Second,
		RequestTimeout:   120 * time.Second,
		MaxPlacesPerCell: 500,
		Language:         "en",
	}
}
