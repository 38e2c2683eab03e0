package model

// ResultSet is the deduplicated collection of businesses for one run,
// keyed by place ID. Insertion order is preserved for export.
//
// Not safe for concurrent use; the scan loop is strictly sequential.
type ResultSet struct {
	order []string
	byID  map[string]Business
}

func NewResultSet() *ResultSet {
	return &ResultSet{byID: make(map[string]Business)}
}

// Insert adds b under its place ID unless one is already present.
// First sighting wins; later duplicates are dropped, never merged.
// Reports whether the record was inserted.
func (rs *ResultSet) Insert(b Business) bool {
	if b.PlaceID == "" {
		return false
	}
	if _, ok := rs.byID[b.PlaceID]; ok {
		return false
	}
	rs.byID[b.PlaceID] = b
	rs.order = append(rs.order, b.PlaceID)
	return true
}

// Has reports whether a record with the given place ID exists.
func (rs *ResultSet) Has(placeID string) bool {
	_, ok := rs.byID[placeID]
	return ok
}

// Get returns the record for the given place ID.
func (rs *ResultSet) Get(placeID string) (Business, bool) {
	b, ok := rs.byID[placeID]
	return b, ok
}

func (rs *ResultSet) Len() int {
	return len(rs.order)
}

// Records returns all businesses in insertion order.
func (rs *ResultSet) Records() []Business {
	out := make([]Business, 0, len(rs.order))
	for _, id := range rs.order {
		out = append(out, rs.byID[id])
	}
	return out
}
