package model

// Location is a point returned by the places provider. Kept as a separate
// struct so a missing location is representable as a nil pointer.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is one raw item from a provider cell query. It lives only long
// enough to be filtered and flattened into a Business.
type Place struct {
	PlaceID     string    `json:"placeId"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Phone       string    `json:"phoneUnformatted"`
	Website     string    `json:"website"`
	Rating      float64   `json:"totalScore"`
	ReviewCount int       `json:"reviewsCount"`
	Categories  []string  `json:"categories"`
	Location    *Location `json:"location"`
	URL         string    `json:"url"`
}

// Business is the canonical deduplicated output record.
type Business struct {
	Name        string  `json:"business_name"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Website     string  `json:"website"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"total_reviews"`
	Categories  string  `json:"categories"`
	Lat         float64 `json:"latitude"`
	Lng         float64 `json:"longitude"`
	PlaceID     string  `json:"place_id"`
	GoogleURL   string  `json:"google_maps_url"`
}
