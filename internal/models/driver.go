package models

import "sync"

// Driver is a mobile agent with a location, a vehicle and an exclusive
// availability flag. The flag and the trip-assignment relation must always
// agree: a driver serves at most one non-terminal trip at a time, and every
// booking race funnels through TryBook.
type Driver struct {
	User
	Vehicle Vehicle `json:"vehicle"`
	Rating  float64 `json:"rating"` // 0..5

	mu        sync.Mutex
	loc       Coord
	available bool
}

func NewDriver(id, name, phone string, loc Coord, vehicle Vehicle, rating float64) *Driver {
	return &Driver{
		User:      User{ID: id, Name: name, Phone: phone, Role: RoleDriver},
		Vehicle:   vehicle,
		Rating:    rating,
		loc:       loc,
		available: true,
	}
}

// TryBook atomically claims the driver. Returns true iff the driver was
// available; a false return has no side effects.
func (d *Driver) TryBook() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.available {
		return false
	}
	d.available = false
	return true
}

// MarkAvailable releases the driver back to the pool.
func (d *Driver) MarkAvailable() {
	d.mu.Lock()
	d.available = true
	d.mu.Unlock()
}

// Available reports the flag without claiming it. Advisory only: the value
// may be stale by the time the caller acts on it, so booking decisions must
// go through TryBook.
func (d *Driver) Available() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.available
}

// Location returns the driver's last reported position.
func (d *Driver) Location() Coord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loc
}

// SetLocation records a position update. Directory implementations are
// responsible for re-indexing after a move.
func (d *Driver) SetLocation(c Coord) {
	d.mu.Lock()
	d.loc = c
	d.mu.Unlock()
}
