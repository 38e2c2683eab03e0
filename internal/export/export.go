// Package export serializes scan results to the supported output formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/leadgrid/leadgrid/internal/model"
)

// Header is the CSV column set, one column per business field. Order
// matches the JSON field order of model.Business.
var Header = []string{
	"business_name", "address", "phone", "website", "rating", "total_reviews",
	"categories", "latitude", "longitude", "place_id", "google_maps_url",
}

// WriteJSON writes businesses as an indented JSON array preserving the
// given order.
func WriteJSON(w io.Writer, businesses []model.Business) error {
	if businesses == nil {
		businesses = []model.Business{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(businesses)
}

// WriteCSV writes businesses as a flat CSV with a header row.
func WriteCSV(w io.Writer, businesses []model.Business) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, b := range businesses {
		row := []string{
			b.Name,
			b.Address,
			b.Phone,
			b.Website,
			fmt.Sprintf("%g", b.Rating),
			fmt.Sprintf("%d", b.ReviewCount),
			b.Categories,
			fmt.Sprintf("%.6f", b.Lat),
			fmt.Sprintf("%.6f", b.Lng),
			b.PlaceID,
			b.GoogleURL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
