package geo

import (
	"testing"

	"github.com/example/ride-engine/internal/models"
)

func gridDriver(id string, lat, lon float64) *models.Driver {
	v := models.NewVehicle("Swift Dzire", "KA01AB1234", models.ProductGo)
	return models.NewDriver(id, id, "000", models.Coord{Lat: lat, Lon: lon}, v, 4.5)
}

func TestGridSearchNeighborhood(t *testing.T) {
	g := NewGrid(DefaultCellSize)

	near := gridDriver("near", 0.005, 0.005)     // same cell as origin
	adjacent := gridDriver("adj", 0.015, 0.005)  // neighboring cell
	far := gridDriver("far", 10, 10)             // way outside the 3x3 block
	g.Update(near)
	g.Update(adjacent)
	g.Update(far)

	got := g.Search(models.Coord{Lat: 0.001, Lon: 0.001})
	ids := map[string]bool{}
	for _, d := range got {
		ids[d.ID] = true
	}
	if !ids["near"] || !ids["adj"] {
		t.Fatalf("expected near and adj in results, got %v", ids)
	}
	if ids["far"] {
		t.Fatal("driver outside the neighborhood must not be returned")
	}
}

func TestGridUpdateRemovesStaleCell(t *testing.T) {
	g := NewGrid(DefaultCellSize)
	d := gridDriver("d1", 0.005, 0.005)
	g.Update(d)

	// Relocate far away; the old cell must not keep a ghost entry.
	d.SetLocation(models.Coord{Lat: 5, Lon: 5})
	g.Update(d)

	if got := g.Search(models.Coord{Lat: 0.001, Lon: 0.001}); len(got) != 0 {
		t.Fatalf("expected no drivers at old location, got %d", len(got))
	}
	got := g.Search(models.Coord{Lat: 5, Lon: 5})
	if len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("expected d1 at new location, got %v", got)
	}
	if g.Len() != 1 {
		t.Fatalf("expected a single membership entry, got %d", g.Len())
	}
}

func TestGridUpdateSameCellIdempotent(t *testing.T) {
	g := NewGrid(DefaultCellSize)
	d := gridDriver("d1", 0.005, 0.005)
	g.Update(d)
	g.Update(d)
	if got := g.Search(models.Coord{}); len(got) != 1 {
		t.Fatalf("expected one entry after repeated updates, got %d", len(got))
	}
}

func TestGridNegativeCoordinates(t *testing.T) {
	g := NewGrid(DefaultCellSize)
	d := gridDriver("d1", -0.005, -0.005)
	g.Update(d)
	if got := g.Search(models.Coord{Lat: -0.001, Lon: -0.001}); len(got) != 1 {
		t.Fatalf("expected driver found across negative cells, got %d", len(got))
	}
}
