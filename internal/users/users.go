package users

import (
	"sync"

	"github.com/example/ride-engine/internal/models"
)

// Registry is the keyed rider/driver lookup. It also serves as the id
// resolver for the Redis-backed directory, which stores driver ids only.
type Registry struct {
	mu      sync.RWMutex
	riders  map[string]*models.Rider
	drivers map[string]*models.Driver
}

func NewRegistry() *Registry {
	return &Registry{
		riders:  make(map[string]*models.Rider),
		drivers: make(map[string]*models.Driver),
	}
}

func (r *Registry) AddRider(rider *models.Rider) {
	r.mu.Lock()
	r.riders[rider.ID] = rider
	r.mu.Unlock()
}

func (r *Registry) AddDriver(d *models.Driver) {
	r.mu.Lock()
	r.drivers[d.ID] = d
	r.mu.Unlock()
}

func (r *Registry) Rider(id string) (*models.Rider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rider, ok := r.riders[id]
	return rider, ok
}

func (r *Registry) Driver(id string) (*models.Driver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drivers[id]
	return d, ok
}
