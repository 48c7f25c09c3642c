package users

import (
	"testing"

	"github.com/example/ride-engine/internal/models"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	rider := models.NewRider("r1", "Rider1", "999")
	v := models.NewVehicle("Swift Dzire", "KA01AB1234", models.ProductGo)
	driver := models.NewDriver("d1", "DriverA", "111", models.Coord{}, v, 4.8)

	r.AddRider(rider)
	r.AddDriver(driver)

	if got, ok := r.Rider("r1"); !ok || got != rider {
		t.Fatal("rider lookup failed")
	}
	if got, ok := r.Driver("d1"); !ok || got != driver {
		t.Fatal("driver lookup failed")
	}
	if _, ok := r.Rider("missing"); ok {
		t.Fatal("unknown rider must not resolve")
	}
	if _, ok := r.Driver("missing"); ok {
		t.Fatal("unknown driver must not resolve")
	}
}
