package geo

import (
	"testing"

	"github.com/example/ride-engine/internal/models"
)

func TestHaversineZero(t *testing.T) {
	d := Haversine(0, 0, 0, 0)
	if d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestEuclidean(t *testing.T) {
	d := Euclidean(models.Coord{Lat: 0, Lon: 0}, models.Coord{Lat: 3, Lon: 4})
	if d != 5 {
		t.Fatalf("expected 5, got %f", d)
	}
}
