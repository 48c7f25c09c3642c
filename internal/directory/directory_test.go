package directory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/example/ride-engine/internal/geo"
	"github.com/example/ride-engine/internal/models"
)

func dirDriver(id string, lat, lon float64) *models.Driver {
	v := models.NewVehicle("Tata Tiago", "KA02CD5678", models.ProductGo)
	return models.NewDriver(id, id, "000", models.Coord{Lat: lat, Lon: lon}, v, 4.5)
}

func TestListReturnsAllDrivers(t *testing.T) {
	l := NewList()
	l.Add(dirDriver("a", 0, 0))
	l.Add(dirDriver("b", 50, 50))

	got := l.Nearby(models.Coord{})
	if len(got) != 2 {
		t.Fatalf("list variant must return all drivers, got %d", len(got))
	}
}

func TestListSnapshotIsolation(t *testing.T) {
	l := NewList()
	l.Add(dirDriver("a", 0, 0))

	snap := l.Nearby(models.Coord{})
	l.Add(dirDriver("b", 1, 1))
	if len(snap) != 1 {
		t.Fatalf("snapshot must not observe later writes, got %d", len(snap))
	}
}

func TestGridDirNearbyFiltersByCell(t *testing.T) {
	g := NewGridDir(geo.DefaultCellSize)
	g.Add(dirDriver("near", 0.005, 0.005))
	g.Add(dirDriver("far", 10, 10))

	got := g.Nearby(models.Coord{})
	if len(got) != 1 || got[0].ID != "near" {
		t.Fatalf("grid variant must return only neighborhood drivers, got %v", got)
	}
}

func TestDirectoryConcurrentAddAndRead(t *testing.T) {
	for name, dir := range map[string]Directory{
		"list": NewList(),
		"grid": NewGridDir(geo.DefaultCellSize),
	} {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					dir.Add(dirDriver(fmt.Sprintf("d%d", i), 0.001*float64(i), 0))
				}(i)
				wg.Add(1)
				go func() {
					defer wg.Done()
					for _, d := range dir.Nearby(models.Coord{}) {
						_ = d.ID
					}
				}()
			}
			wg.Wait()
			if got := dir.Nearby(models.Coord{}); len(got) == 0 {
				t.Fatal("expected drivers after concurrent adds")
			}
		})
	}
}
