package matching

import (
	"github.com/example/ride-engine/internal/geo"
	"github.com/example/ride-engine/internal/models"
)

// Strategy selects one driver from a candidate set already filtered for
// product compatibility. Strategies are pure: no mutation, no I/O.
type Strategy interface {
	Pick(pickup models.Coord, candidates []*models.Driver) *models.Driver
}

// NearestLocation picks the candidate closest to the pickup point by
// Euclidean distance. Ties go to the first minimal candidate encountered.
type NearestLocation struct{}

func (NearestLocation) Pick(pickup models.Coord, candidates []*models.Driver) *models.Driver {
	var best *models.Driver
	var bestDist float64
	for _, d := range candidates {
		dist := geo.Euclidean(pickup, d.Location())
		if best == nil || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// RatingBased picks the highest-rated candidate; equal ratings fall back to
// ascending distance to pickup.
type RatingBased struct{}

func (RatingBased) Pick(pickup models.Coord, candidates []*models.Driver) *models.Driver {
	var best *models.Driver
	var bestDist float64
	for _, d := range candidates {
		dist := geo.Euclidean(pickup, d.Location())
		switch {
		case best == nil:
		case d.Rating < best.Rating:
			continue
		case d.Rating == best.Rating && dist >= bestDist:
			continue
		}
		best, bestDist = d, dist
	}
	return best
}

// ByName maps a config value to a strategy, defaulting to nearest-location.
func ByName(name string) Strategy {
	if name == "rating" {
		return RatingBased{}
	}
	return NearestLocation{}
}
