package scraper

import (
	"strings"

	"github.com/leadgrid/leadgrid/internal/engine/geo"
	"github.com/leadgrid/leadgrid/internal/model"
)

// Aggregator filters each cell's raw places and merges the survivors into
// a shared ResultSet. Grid cells overreach the disc and overlap each other,
// so the true-radius check and the first-seen-wins dedup both live here.
type Aggregator struct {
	area  model.SearchArea
	types []string
	set   *model.ResultSet
}

// NewAggregator creates an aggregator for one run. types filters by
// category (case-insensitive exact match per token); empty means keep all.
func NewAggregator(area model.SearchArea, types []string) *Aggregator {
	return &Aggregator{area: area, types: types, set: model.NewResultSet()}
}

// Add applies the inclusion rules to each place and inserts new records.
// Returns the count of newly inserted businesses for progress reporting.
func (a *Aggregator) Add(places []model.Place) int {
	inserted := 0
	for _, p := range places {
		if p.PlaceID == "" {
			continue
		}
		if p.Location != nil {
			d := geo.DistanceKm(a.area.Lat, a.area.Lon, p.Location.Lat, p.Location.Lng)
			if d > a.area.RadiusKm {
				continue
			}
		}
		if len(a.types) > 0 && !matchesType(p.Categories, a.types) {
			continue
		}
		if a.set.Insert(flatten(p)) {
			inserted++
		}
	}
	return inserted
}

// Results returns the shared result set. The aggregator keeps writing to it
// until the run ends.
func (a *Aggregator) Results() *model.ResultSet {
	return a.set
}

func matchesType(categories, types []string) bool {
	for _, t := range types {
		for _, c := range categories {
			if strings.EqualFold(c, t) {
				return true
			}
		}
	}
	return false
}

func flatten(p model.Place) model.Business {
	b := model.Business{
		Name:        p.Title,
		Address:     p.Address,
		Phone:       p.Phone,
		Website:     p.Website,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Categories:  strings.Join(p.Categories, ", "),
		PlaceID:     p.PlaceID,
		GoogleURL:   p.URL,
	}
	if p.Location != nil {
		b.Lat = p.Location.Lat
		b.Lng = p.Location.Lng
	}
	return b
}
