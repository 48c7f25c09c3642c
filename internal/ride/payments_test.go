package ride

import (
	"context"
	"testing"

	"github.com/example/ride-engine/internal/matching"
	"github.com/example/ride-engine/internal/models"
)

type fakePayments struct {
	holds    int
	captures int
	cancels  int
}

func (f *fakePayments) Hold(ctx context.Context, amount int64, currency, customerID string) (string, error) {
	f.holds++
	return "hold_1", nil
}

func (f *fakePayments) Capture(ctx context.Context, holdID string) error {
	f.captures++
	return nil
}

func (f *fakePayments) Cancel(ctx context.Context, holdID string) error {
	f.cancels++
	return nil
}

func TestFareHeldAndCaptured(t *testing.T) {
	d := testDriver("d1", 0, 0, 4.8)
	svc := newTestService(matching.NearestLocation{}, d)
	pay := &fakePayments{}
	svc.Payments = pay
	rider := models.NewRider("r1", "Rider1", "999")

	ctx := context.Background()
	quote := svc.GetEstimate(models.Coord{}, models.Coord{Lat: 5, Lon: 5}, goProduct())
	trip, err := svc.RequestRide(ctx, rider, quote)
	if err != nil {
		t.Fatalf("request ride: %v", err)
	}
	if pay.holds != 1 {
		t.Fatalf("expected 1 hold on assignment, got %d", pay.holds)
	}

	svc.StartRide(trip.ID, trip.OTP())
	if !svc.EndRide(ctx, trip.ID) {
		t.Fatal("end ride")
	}
	if pay.captures != 1 {
		t.Fatalf("expected 1 capture on completion, got %d", pay.captures)
	}
	if pay.cancels != 0 {
		t.Fatalf("unexpected cancel, got %d", pay.cancels)
	}
}

func TestNoHoldWithoutAssignment(t *testing.T) {
	svc := newTestService(matching.NearestLocation{})
	pay := &fakePayments{}
	svc.Payments = pay
	rider := models.NewRider("r1", "Rider1", "999")

	ctx := context.Background()
	quote := svc.GetEstimate(models.Coord{}, models.Coord{Lat: 5, Lon: 5}, goProduct())
	trip, _ := svc.RequestRide(ctx, rider, quote)
	if pay.holds != 0 {
		t.Fatalf("unmatched trip must not hold funds, got %d", pay.holds)
	}

	svc.CancelRide(ctx, trip.ID)
	if pay.cancels != 0 {
		t.Fatalf("cancel without a hold must be a no-op, got %d", pay.cancels)
	}
}
