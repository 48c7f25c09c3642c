package geo

import (
	"fmt"
	"math"

	"github.com/example/ride-engine/internal/models"
)

// DefaultCellSize is the grid cell edge in degrees, roughly 1.11 km of
// latitude.
const DefaultCellSize = 0.01

// Grid is a fixed-cell spatial partition over driver locations. Search scans
// the 3x3 neighborhood around the query cell, so results are a pre-filter:
// drivers just outside the block are missed, drivers inside the block but
// beyond the nominal radius leak through. Callers must tolerate both.
//
// Grid is not safe for concurrent use; internal/directory wraps it with a
// lock.
type Grid struct {
	cellSize float64
	cells    map[string]map[string]*models.Driver
	member   map[string]string // driver id -> current cell
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[string]map[string]*models.Driver),
		member:   make(map[string]string),
	}
}

func (g *Grid) cellID(c models.Coord) string {
	x := int(math.Floor(c.Lat / g.cellSize))
	y := int(math.Floor(c.Lon / g.cellSize))
	return fmt.Sprintf("%d,%d", x, y)
}

// Update places the driver in the cell for its current location. A driver
// that moved is first removed from its previous cell; without that the index
// accumulates ghost entries.
func (g *Grid) Update(d *models.Driver) {
	id := g.cellID(d.Location())
	if prev, ok := g.member[d.ID]; ok {
		if prev == id {
			g.cells[prev][d.ID] = d
			return
		}
		delete(g.cells[prev], d.ID)
		if len(g.cells[prev]) == 0 {
			delete(g.cells, prev)
		}
	}
	cell, ok := g.cells[id]
	if !ok {
		cell = make(map[string]*models.Driver)
		g.cells[id] = cell
	}
	cell[d.ID] = d
	g.member[d.ID] = id
}

// Search returns the union of drivers in the 3x3 block of cells around the
// center's cell.
func (g *Grid) Search(center models.Coord) []*models.Driver {
	cx := int(math.Floor(center.Lat / g.cellSize))
	cy := int(math.Floor(center.Lon / g.cellSize))

	var out []*models.Driver
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			key := fmt.Sprintf("%d,%d", cx+dx, cy+dy)
			for _, d := range g.cells[key] {
				out = append(out, d)
			}
		}
	}
	return out
}

// Len reports the number of indexed drivers.
func (g *Grid) Len() int {
	return len(g.member)
}
