package domain

import "math"

// Immutable geographic coordinates in decimal degrees (WGS84 assumed, never transformed).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Valid reports whether both components are finite and inside the WGS84 ranges.
func (c Coordinates) Valid() bool {
	return validLatitude(c.Lat) && validLongitude(c.Lon)
}

func validLatitude(v float64) bool {
	return !math.IsNaN(v) && v >= -90 && v <= 90
}

func validLongitude(v float64) bool {
	return !math.IsNaN(v) && v >= -180 && v <= 180
}
