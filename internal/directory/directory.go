package directory

import (
	"sync"

	"github.com/example/ride-engine/internal/geo"
	"github.com/example/ride-engine/internal/models"
)

// Directory stores drivers and answers nearby queries. Implementations must
// return a stable snapshot from Nearby (safe to iterate while writers run)
// and keep writes mutually exclusive with snapshot construction.
type Directory interface {
	Add(d *models.Driver)
	Nearby(loc models.Coord) []*models.Driver
}

// List is the O(n) variant: Nearby returns every driver regardless of
// location and leaves all distance reasoning to the matching strategy.
type List struct {
	mu      sync.RWMutex
	drivers []*models.Driver
}

func NewList() *List {
	return &List{}
}

func (l *List) Add(d *models.Driver) {
	l.mu.Lock()
	l.drivers = append(l.drivers, d)
	l.mu.Unlock()
}

func (l *List) Nearby(loc models.Coord) []*models.Driver {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*models.Driver, len(l.drivers))
	copy(out, l.drivers)
	return out
}

// GridDir is the O(k) variant backed by the spatial grid; Nearby returns only
// drivers in the 3x3 cell neighborhood of the query point.
type GridDir struct {
	mu   sync.RWMutex
	grid *geo.Grid
}

func NewGridDir(cellSize float64) *GridDir {
	return &GridDir{grid: geo.NewGrid(cellSize)}
}

func (g *GridDir) Add(d *models.Driver) {
	g.mu.Lock()
	g.grid.Update(d)
	g.mu.Unlock()
}

// Relocate re-indexes a driver after a location update.
func (g *GridDir) Relocate(d *models.Driver) {
	g.mu.Lock()
	g.grid.Update(d)
	g.mu.Unlock()
}

func (g *GridDir) Nearby(loc models.Coord) []*models.Driver {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.grid.Search(loc)
}
