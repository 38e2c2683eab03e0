package model

import (
	"fmt"
	"math"
)

// maxSearchLat bounds the usable latitude range. Beyond it the longitude
// degrees-per-km conversion degenerates (cos approaches zero) and cells
// stretch toward the full longitude range.
const maxSearchLat = 85.0

// SearchArea is the circular region to cover: a center point and a radius
// in kilometers. Immutable once validated.
type SearchArea struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
}

// Validate checks the area before any planning or network activity.
func (a SearchArea) Validate() error {
	switch {
	case math.IsNaN(a.Lat) || math.IsNaN(a.Lon) || math.IsNaN(a.RadiusKm):
		return fmt.Errorf("search area contains NaN")
	case a.Lat < -90 || a.Lat > 90:
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", a.Lat)
	case a.Lon < -180 || a.Lon > 180:
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", a.Lon)
	case a.RadiusKm <= 0:
		return fmt.Errorf("radius must be greater than 0, got %.2f", a.RadiusKm)
	case a.Lat < -maxSearchLat || a.Lat > maxSearchLat:
		return fmt.Errorf("latitude %.4f too close to a pole (supported range [-%.0f, %.0f])", a.Lat, maxSearchLat, maxSearchLat)
	}
	return nil
}

// Cell is one rectangular sub-region of the search area, the unit of work
// sent to the places provider.
type Cell struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Center returns the cell's own center point.
func (c Cell) Center() (lat, lon float64) {
	return (c.MinLat + c.MaxLat) / 2, (c.MinLon + c.MaxLon) / 2
}

// SearchParams holds the user-facing configuration for one scan session.
type SearchParams struct {
	Lat      float64
	Lon      float64
	RadiusKm float64

	// Types filters results by business category (case-insensitive exact
	// match per category token). Empty means no filter.
	Types []string

	Format    string // json | csv | sheet
	OutputDir string
	DBPath    string
	LogPath   string
	NoTUI     bool
}

// Area returns the validated-input view of the params.
func (p *SearchParams) Area() SearchArea {
	return SearchArea{Lat: p.Lat, Lon: p.Lon, RadiusKm: p.RadiusKm}
}
