package geo

import (
	"math"

	"github.com/example/ride-engine/internal/models"
)

// Euclidean is the flat-plane distance in coordinate degrees. The matching
// strategies rank candidates with it; it is not a road distance.
func Euclidean(a, b models.Coord) float64 {
	dx := a.Lat - b.Lat
	dy := a.Lon - b.Lon
	return math.Sqrt(dx*dx + dy*dy)
}

// Haversine distance in meters, for callers that want a real-world scale
// (ETA estimation, fare distance).
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
