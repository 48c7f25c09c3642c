package ride

import (
	"hash/fnv"
	"sync"

	"github.com/example/ride-engine/internal/models"
)

const registryShards = 16

type tripShard struct {
	mu    sync.RWMutex
	trips map[string]*models.Trip
}

// tripRegistry is the in-memory trip map, sharded by trip id so concurrent
// calls on different trips never contend on one lock.
type tripRegistry struct {
	shards [registryShards]tripShard
}

func newTripRegistry() *tripRegistry {
	r := &tripRegistry{}
	for i := range r.shards {
		r.shards[i].trips = make(map[string]*models.Trip)
	}
	return r
}

func (r *tripRegistry) shard(id string) *tripShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &r.shards[h.Sum32()%registryShards]
}

func (r *tripRegistry) put(t *models.Trip) {
	s := r.shard(t.ID)
	s.mu.Lock()
	s.trips[t.ID] = t
	s.mu.Unlock()
}

func (r *tripRegistry) get(id string) (*models.Trip, bool) {
	s := r.shard(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trips[id]
	return t, ok
}
