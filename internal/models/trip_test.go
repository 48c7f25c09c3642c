package models

import (
	"testing"
	"time"
)

func newTestTrip() *Trip {
	rider := NewRider("r1", "Rider1", "999")
	p, _ := ProductByType(ProductGo)
	return NewTrip("t1", rider, Coord{}, Coord{Lat: 5, Lon: 5}, p, 123.45)
}

func TestTripLifecycle(t *testing.T) {
	tr := newTestTrip()
	d := NewDriver("d1", "DriverA", "111", Coord{}, testVehicle(), 4.8)
	if !d.TryBook() {
		t.Fatal("book driver")
	}

	if tr.Start(1234) {
		t.Fatal("start before assignment must fail")
	}
	if !tr.Assign(d, 1234) {
		t.Fatal("assign from REQUESTED must succeed")
	}
	if tr.Status() != TripAssigned {
		t.Fatalf("status = %s, want ASSIGNED", tr.Status())
	}

	if tr.Start(4321) {
		t.Fatal("wrong OTP must be rejected")
	}
	if tr.Status() != TripAssigned {
		t.Fatal("rejected start must leave state unchanged")
	}
	if !tr.Start(1234) {
		t.Fatal("correct OTP must start the trip")
	}
	if tr.Status() != TripInTransit {
		t.Fatalf("status = %s, want IN_TRANSIT", tr.Status())
	}

	if !tr.End() {
		t.Fatal("end from IN_TRANSIT must succeed")
	}
	if tr.Status() != TripCompleted {
		t.Fatalf("status = %s, want COMPLETED", tr.Status())
	}
	if !d.TryBook() {
		t.Fatal("driver must be released on completion")
	}
}

func TestTripTerminalStatesAbsorb(t *testing.T) {
	tr := newTestTrip()
	if !tr.Cancel() {
		t.Fatal("cancel from REQUESTED must succeed")
	}
	if tr.Cancel() || tr.Start(0) || tr.End() {
		t.Fatal("cancelled trip must absorb all transitions")
	}
	if tr.Status() != TripCancelled {
		t.Fatalf("status = %s, want CANCELLED", tr.Status())
	}

	d := NewDriver("d1", "DriverA", "111", Coord{}, testVehicle(), 4.8)
	done := newTestTrip()
	d.TryBook()
	done.Assign(d, 1111)
	done.Start(1111)
	done.End()
	if done.End() || done.Start(1111) || done.Cancel() {
		t.Fatal("completed trip must absorb all transitions")
	}
}

func TestTripCancelAfterAssignFails(t *testing.T) {
	tr := newTestTrip()
	d := NewDriver("d1", "DriverA", "111", Coord{}, testVehicle(), 4.8)
	d.TryBook()
	tr.Assign(d, 2222)
	if tr.Cancel() {
		t.Fatal("cancel after assignment must fail")
	}
}

func TestQuoteExpiry(t *testing.T) {
	p, _ := ProductByType(ProductGo)
	created := time.Now()
	q := NewFareQuote("q1", 99, p, Coord{}, Coord{Lat: 1, Lon: 1}, created, 5*time.Minute)

	if q.Expired(created.Add(4 * time.Minute)) {
		t.Fatal("quote must be valid within TTL")
	}
	if q.Expired(q.Expiry) {
		t.Fatal("quote must be valid exactly at expiry")
	}
	if !q.Expired(created.Add(6 * time.Minute)) {
		t.Fatal("quote must be expired after TTL")
	}
}
