package models

import (
	"sync"
	"testing"
)

func testVehicle() Vehicle {
	return NewVehicle("Swift Dzire", "KA01AB1234", ProductGo)
}

func TestTryBookExclusive(t *testing.T) {
	d := NewDriver("d1", "DriverA", "111", Coord{}, testVehicle(), 4.8)
	if !d.TryBook() {
		t.Fatal("first book should succeed")
	}
	if d.TryBook() {
		t.Fatal("second book should fail while held")
	}
	d.MarkAvailable()
	if !d.TryBook() {
		t.Fatal("book after release should succeed")
	}
}

func TestTryBookConcurrentSingleWinner(t *testing.T) {
	d := NewDriver("d1", "DriverA", "111", Coord{}, testVehicle(), 4.8)

	const callers = 32
	var wg sync.WaitGroup
	wins := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- d.TryBook()
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", won)
	}
}

func TestVehicleSupports(t *testing.T) {
	v := NewVehicle("Toyota Innova", "KA05XY9999", ProductXL, ProductShare)
	if !v.Supports(ProductXL) || !v.Supports(ProductShare) {
		t.Fatal("expected XL and Share support")
	}
	if v.Supports(ProductGo) {
		t.Fatal("unexpected Go support")
	}
}
