package eta

import (
	"errors"
	"testing"
	"time"

	"github.com/example/ride-engine/internal/models"
)

func TestSimWithinBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		v, err := Sim{}.EstimateSeconds(models.Coord{}, models.Coord{Lat: 1, Lon: 1})
		if err != nil {
			t.Fatalf("sim estimator errored: %v", err)
		}
		if v < 300 || v > 1800 {
			t.Fatalf("sim estimate %f outside [300, 1800]", v)
		}
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	a, b := models.Coord{}, models.Coord{Lat: 1, Lon: 1}

	c.Set(a, b, 42)
	if v, ok := c.Get(a, b); !ok || v != 42 {
		t.Fatalf("expected cached 42, got %f %v", v, ok)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(a, b); ok {
		t.Fatal("expected entry to expire")
	}
}

type failingClient struct{}

func (failingClient) EstimateSeconds(from, to models.Coord) (float64, error) {
	return 0, errors.New("backend down")
}

func TestCachedFallsBackToNaive(t *testing.T) {
	c := &Cached{Client: failingClient{}, Cache: NewCache(time.Minute), Speed: 10}
	v, err := c.EstimateSeconds(models.Coord{}, models.Coord{Lat: 0.01, Lon: 0})
	if err != nil {
		t.Fatalf("cached estimator must not propagate backend errors, got %v", err)
	}
	if v <= 0 {
		t.Fatalf("expected positive naive estimate, got %f", v)
	}
}

type fixedClient struct{ v float64 }

func (f fixedClient) EstimateSeconds(from, to models.Coord) (float64, error) { return f.v, nil }

func TestCachedStoresBackendResult(t *testing.T) {
	cache := NewCache(time.Minute)
	c := &Cached{Client: fixedClient{v: 600}, Cache: cache}
	a, b := models.Coord{}, models.Coord{Lat: 1, Lon: 1}

	if v, _ := c.EstimateSeconds(a, b); v != 600 {
		t.Fatalf("expected backend value, got %f", v)
	}
	if v, ok := cache.Get(a, b); !ok || v != 600 {
		t.Fatalf("expected value cached, got %f %v", v, ok)
	}
}
