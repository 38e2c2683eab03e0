package geo

import "math"

const (
	earthRadiusKm  = 6371.0
	kmPerLatDegree = 111.32
)

// DistanceKm returns the great-circle (haversine) distance in kilometers
// between two points given in degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DegreesPerKmAt returns how many degrees of latitude and longitude one
// kilometer spans at the given latitude. The longitude figure grows with
// |lat| and degenerates near the poles; callers validate latitude range
// before planning.
func DegreesPerKmAt(lat float64) (latDegPerKm, lonDegPerKm float64) {
	latDegPerKm = 1 / kmPerLatDegree
	lonDegPerKm = 1 / (kmPerLatDegree * math.Cos(lat*math.Pi/180.0))
	return latDegPerKm, lonDegPerKm
}
