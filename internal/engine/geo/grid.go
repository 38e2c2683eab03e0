package geo

import (
	"math"

	"github.com/leadgrid/leadgrid/internal/model"
)

// PlanCells covers the search area with square cells of edge cellSizeKm.
// Cells are laid on a local planar grid anchored at the area center and a
// cell is kept only if its own center lies within the search radius. A cell
// that partially overlaps the disc edge but whose center falls just outside
// is dropped; near-boundary results may be missed. Output is row-major from
// south-west to north-east and deterministic for identical inputs.
func PlanCells(area model.SearchArea, cellSizeKm float64) []model.Cell {
	latDegPerKm, lonDegPerKm := DegreesPerKmAt(area.Lat)
	steps := int(math.Ceil(area.RadiusKm * 2 / cellSizeKm))

	var cells []model.Cell
	for i := -steps; i <= steps; i++ {
		for j := -steps; j <= steps; j++ {
			cell := model.Cell{
				MinLat: area.Lat + float64(i)*cellSizeKm*latDegPerKm,
				MaxLat: area.Lat + float64(i+1)*cellSizeKm*latDegPerKm,
				MinLon: area.Lon + float64(j)*cellSizeKm*lonDegPerKm,
				MaxLon: area.Lon + float64(j+1)*cellSizeKm*lonDegPerKm,
			}
			cLat, cLon := cell.Center()
			if DistanceKm(area.Lat, area.Lon, cLat, cLon) <= area.RadiusKm {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}
