package storage

import (
	"sync"
	"time"

	"github.com/example/ride-engine/internal/models"
)

// TripRecord is the flattened snapshot the engine archives on every status
// change. Write-behind telemetry only: the in-memory registry stays the
// source of truth for live trips.
type TripRecord struct {
	ID       string
	RiderID  string
	DriverID string
	Pickup   models.Coord
	Dropoff  models.Coord
	Product  models.ProductType
	Fare     float64
	Status   models.TripStatus
	Created  time.Time
	Updated  time.Time
}

// Snapshot flattens a trip into an archivable record.
func Snapshot(t *models.Trip, now time.Time) TripRecord {
	rec := TripRecord{
		ID:      t.ID,
		Pickup:  t.Pickup,
		Dropoff: t.Dropoff,
		Product: t.Product.Type,
		Fare:    t.Fare,
		Status:  t.Status(),
		Created: now,
		Updated: now,
	}
	if t.Rider != nil {
		rec.RiderID = t.Rider.ID
	}
	if d := t.Driver(); d != nil {
		rec.DriverID = d.ID
	}
	return rec
}

// TripStore defines the archive operations for trip snapshots.
type TripStore interface {
	SaveTrip(rec TripRecord) error
	UpdateTrip(rec TripRecord) error
}

// MemoryStore keeps records in a map. Default when no Postgres DSN is set.
type MemoryStore struct {
	mu    sync.RWMutex
	trips map[string]TripRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trips: make(map[string]TripRecord)}
}

func (m *MemoryStore) SaveTrip(rec TripRecord) error {
	m.mu.Lock()
	m.trips[rec.ID] = rec
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) UpdateTrip(rec TripRecord) error {
	m.mu.Lock()
	m.trips[rec.ID] = rec
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(id string) (TripRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.trips[id]
	return rec, ok
}
