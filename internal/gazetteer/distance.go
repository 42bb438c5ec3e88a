package gazetteer

import (
	"math"

	"gazetteer-service/internal/domain"
)

// EarthRadiusKm is the mean radius of the spherical Earth model used for distances.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometres between two points
// using the haversine formula on a spherical Earth. It is an approximation,
// not a geodesic result.
func Distance(a, b domain.Coordinates) float64 {
	return haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
