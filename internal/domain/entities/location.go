package entities

import "math"

// Location represents geographical coordinates in decimal degrees.
// The zero value is a sentinel meaning "unresolved"; it must be filtered
// out before any distance math.
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// IsZero reports whether the location is the unresolved sentinel.
func (l Location) IsZero() bool {
	return l.Latitude == 0 && l.Longitude == 0
}

// SqDegreesTo returns the squared distance to other in degree-space.
// No geodesic correction; only usable for coarse nearest-of comparisons.
func (l Location) SqDegreesTo(other Location) float64 {
	dLat := l.Latitude - other.Latitude
	dLng := l.Longitude - other.Longitude
	return dLat*dLat + dLng*dLng
}

// DegreesTo returns the straight-line distance to other in degrees.
func (l Location) DegreesTo(other Location) float64 {
	return math.Sqrt(l.SqDegreesTo(other))
}

// KmTo returns the great-circle distance to other in kilometers
// using the Haversine formula.
func (l Location) KmTo(other Location) float64 {
	const earthRadiusKm = 6371.0

	lat1 := toRadians(l.Latitude)
	lat2 := toRadians(other.Latitude)
	deltaLat := toRadians(other.Latitude - l.Latitude)
	deltaLng := toRadians(other.Longitude - l.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
