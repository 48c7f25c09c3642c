package eta

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/example/ride-engine/internal/geo"
	"github.com/example/ride-engine/internal/models"
)

// Client is the interface the ride service uses to get pickup ETAs.
type Client interface {
	EstimateSeconds(from, to models.Coord) (float64, error)
}

// Sim is the stand-in estimator: a randomized duration between 5 and 30
// minutes, no I/O. Production deployments swap in the OSRM client.
type Sim struct{}

func (Sim) EstimateSeconds(from, to models.Coord) (float64, error) {
	return float64(300 + rand.Intn(1501)), nil
}

// Naive estimates travel time as straight-line distance over a fixed speed.
// Used as the fallback when a routing backend errors out.
func Naive(from, to models.Coord, speedMps float64) float64 {
	if speedMps <= 0 {
		speedMps = 8.0 // ~28.8 km/h default city speed
	}
	d := geo.Haversine(from.Lat, from.Lon, to.Lat, to.Lon)
	return d / speedMps
}

// Cache is a tiny in-memory TTL cache for ETA lookups keyed by coord pair.
type Cache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	v  float64
	ts time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: make(map[string]cacheEntry), ttl: ttl}
}

func keyFor(a, b models.Coord) string {
	return fmtCoord(a) + "->" + fmtCoord(b)
}

func fmtCoord(c models.Coord) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

// Get returns the cached value and true if present and not expired.
func (c *Cache) Get(a, b models.Coord) (float64, bool) {
	k := keyFor(a, b)
	c.mu.RLock()
	e, ok := c.store[k]
	c.mu.RUnlock()
	if !ok {
		return 0, false
	}
	if time.Since(e.ts) > c.ttl {
		c.mu.Lock()
		delete(c.store, k)
		c.mu.Unlock()
		return 0, false
	}
	return e.v, true
}

// Set stores a value in the cache.
func (c *Cache) Set(a, b models.Coord, v float64) {
	k := keyFor(a, b)
	c.mu.Lock()
	c.store[k] = cacheEntry{v: v, ts: time.Now()}
	c.mu.Unlock()
}

// Cached wraps a Client with the TTL cache and the naive fallback.
type Cached struct {
	Client Client
	Cache  *Cache
	Speed  float64
}

func (c *Cached) EstimateSeconds(from, to models.Coord) (float64, error) {
	if c.Cache != nil {
		if v, ok := c.Cache.Get(from, to); ok {
			return v, nil
		}
	}
	if c.Client != nil {
		if v, err := c.Client.EstimateSeconds(from, to); err == nil {
			if c.Cache != nil {
				c.Cache.Set(from, to, v)
			}
			return v, nil
		}
	}
	return Naive(from, to, c.Speed), nil
}
