package ride

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	mrand "math/rand"
	"time"

	"github.com/example/ride-engine/internal/dispatch"
	"github.com/example/ride-engine/internal/eta"
	"github.com/example/ride-engine/internal/matching"
	"github.com/example/ride-engine/internal/models"
	"github.com/example/ride-engine/internal/observability"
	"github.com/example/ride-engine/internal/pricing"
	"github.com/example/ride-engine/internal/storage"
)

// ErrQuoteExpired is the one hard failure in the engine: the caller must
// fetch a fresh quote and retry. Everything else in the request path fails
// soft (nil driver, boolean false).
var ErrQuoteExpired = errors.New("quote expired")

// MaxBookAttempts bounds the booking-race retry loop in RequestRide.
const MaxBookAttempts = 5

// PaymentHolder places and settles fare holds. Calls are best-effort side
// effects: a failed hold is logged, never propagated into the booking path.
type PaymentHolder interface {
	Hold(ctx context.Context, amount int64, currency, customerID string) (string, error)
	Capture(ctx context.Context, holdID string) error
	Cancel(ctx context.Context, holdID string) error
}

// Service orchestrates quoting, booking, pickup verification and completion.
// It exclusively owns the trip registry for the process lifetime.
type Service struct {
	Matching *matching.Service
	Pricing  *pricing.Service
	ETA      eta.Client
	Store    storage.TripStore
	Dispatch dispatch.Dispatcher // optional
	Payments PaymentHolder       // optional

	Attempts int
	Logger   *slog.Logger

	trips *tripRegistry
	holds *holdTracker
	now   func() time.Time
}

func NewService(m *matching.Service, p *pricing.Service, e eta.Client, store storage.TripStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &Service{
		Matching: m,
		Pricing:  p,
		ETA:      e,
		Store:    store,
		Attempts: MaxBookAttempts,
		Logger:   logger,
		trips:    newTripRegistry(),
		holds:    newHoldTracker(),
		now:      time.Now,
	}
}

// SetClock overrides the service clock. Tests only.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// GetEstimate prices the trip and returns a TTL-bound quote.
func (s *Service) GetEstimate(pickup, dropoff models.Coord, product models.Product) models.FareQuote {
	q := s.Pricing.Quote(pickup, dropoff, product)
	s.Logger.Debug("quote issued", "quote_id", q.ID, "amount", q.Amount, "product", product.Type)
	return q
}

// RequestRide books a driver against the quote. Hard-fails with
// ErrQuoteExpired when the TTL has elapsed. When no driver can be booked
// within the retry budget, the trip is returned in REQUESTED state with a
// nil driver; callers branch on Trip.Driver() == nil.
func (s *Service) RequestRide(ctx context.Context, rider *models.Rider, quote models.FareQuote) (*models.Trip, error) {
	if quote.Expired(s.now()) {
		observability.QuotesExpired.Inc()
		return nil, fmt.Errorf("%w: quote %s", ErrQuoteExpired, quote.ID)
	}

	trip := models.NewTrip(newTripID(), rider, quote.Pickup, quote.Dropoff, quote.Product, quote.Amount)

	attempts := s.Attempts
	if attempts <= 0 {
		attempts = MaxBookAttempts
	}
	for i := 0; i < attempts; i++ {
		driver := s.Matching.FindDriver(quote.Pickup, quote.Product)
		if driver == nil {
			// No candidates at all; retrying cannot help.
			break
		}
		if !driver.TryBook() {
			// Lost the race; the next query may surface a different driver.
			observability.BookingRaces.Inc()
			continue
		}

		trip.Assign(driver, newOTP())
		s.trips.put(trip)
		observability.TripsAssigned.Inc()
		s.Logger.Info("trip assigned", "trip_id", trip.ID, "driver_id", driver.ID, "fare", trip.Fare)

		s.archive(trip, true)
		s.holdFare(ctx, trip)
		s.notifyDriver(trip, driver)
		return trip, nil
	}

	// Soft failure: the trip stays REQUESTED with no driver. It is still
	// registered so the rider can cancel it or retry against it later.
	s.trips.put(trip)
	observability.TripsUnmatched.Inc()
	s.Logger.Warn("no driver booked", "trip_id", trip.ID, "attempts", attempts)
	s.archive(trip, true)
	return trip, nil
}

// StartRide verifies the OTP and moves the trip to IN_TRANSIT. False for an
// unknown trip, a wrong state or a wrong OTP; state is untouched on failure.
func (s *Service) StartRide(tripID string, otp int) bool {
	trip, ok := s.trips.get(tripID)
	if !ok {
		s.Logger.Error("start ride: trip not found", "trip_id", tripID)
		return false
	}
	if !trip.Start(otp) {
		s.Logger.Error("start ride rejected", "trip_id", tripID, "status", trip.Status())
		return false
	}
	s.Logger.Info("trip started", "trip_id", tripID)
	s.archive(trip, false)
	return true
}

// EndRide completes an in-transit trip and releases its driver.
func (s *Service) EndRide(ctx context.Context, tripID string) bool {
	trip, ok := s.trips.get(tripID)
	if !ok {
		return false
	}
	if !trip.End() {
		s.Logger.Error("end ride rejected", "trip_id", tripID, "status", trip.Status())
		return false
	}
	observability.TripsCompleted.Inc()
	s.Logger.Info("trip completed", "trip_id", tripID)
	s.archive(trip, false)
	s.captureFare(ctx, trip)
	return true
}

// CancelRide cancels a trip that never got a driver. Only REQUESTED trips
// can be cancelled; anything holding a driver must run to completion.
func (s *Service) CancelRide(ctx context.Context, tripID string) bool {
	trip, ok := s.trips.get(tripID)
	if !ok {
		return false
	}
	if !trip.Cancel() {
		return false
	}
	observability.TripsCancelled.Inc()
	s.Logger.Info("trip cancelled", "trip_id", tripID)
	s.archive(trip, false)
	s.releaseFare(ctx, trip)
	return true
}

// Trip exposes a registered trip by id.
func (s *Service) Trip(tripID string) (*models.Trip, bool) {
	return s.trips.get(tripID)
}

func (s *Service) archive(trip *models.Trip, create bool) {
	rec := storage.Snapshot(trip, s.now())
	var err error
	if create {
		err = s.Store.SaveTrip(rec)
	} else {
		err = s.Store.UpdateTrip(rec)
	}
	if err != nil {
		s.Logger.Warn("trip archive failed", "trip_id", trip.ID, "error", err)
	}
}

func (s *Service) notifyDriver(trip *models.Trip, driver *models.Driver) {
	if s.Dispatch == nil {
		return
	}
	var etaSec float64
	if s.ETA != nil {
		if v, err := s.ETA.EstimateSeconds(driver.Location(), trip.Pickup); err == nil {
			etaSec = v
		}
	}
	a := dispatch.Assignment{
		TripID:     trip.ID,
		RiderName:  trip.Rider.Name,
		Pickup:     trip.Pickup,
		Dropoff:    trip.Dropoff,
		Fare:       trip.Fare,
		ETASeconds: etaSec,
	}
	if err := s.Dispatch.Offer(driver.ID, a); err != nil {
		s.Logger.Warn("assignment dispatch failed", "trip_id", trip.ID, "driver_id", driver.ID, "error", err)
	}
}

func (s *Service) holdFare(ctx context.Context, trip *models.Trip) {
	if s.Payments == nil {
		return
	}
	holdID, err := s.Payments.Hold(ctx, toMinorUnits(trip.Fare), "inr", trip.Rider.ID)
	if err != nil {
		s.Logger.Warn("fare hold failed", "trip_id", trip.ID, "error", err)
		return
	}
	s.holds.set(trip.ID, holdID)
}

func (s *Service) captureFare(ctx context.Context, trip *models.Trip) {
	if s.Payments == nil {
		return
	}
	if holdID, ok := s.holds.take(trip.ID); ok {
		if err := s.Payments.Capture(ctx, holdID); err != nil {
			s.Logger.Warn("fare capture failed", "trip_id", trip.ID, "error", err)
		}
	}
}

func (s *Service) releaseFare(ctx context.Context, trip *models.Trip) {
	if s.Payments == nil {
		return
	}
	if holdID, ok := s.holds.take(trip.ID); ok {
		if err := s.Payments.Cancel(ctx, holdID); err != nil {
			s.Logger.Warn("fare release failed", "trip_id", trip.ID, "error", err)
		}
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

func newTripID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "t_" + hex.EncodeToString(b)
}

// newOTP returns a 4-digit pickup code in [1000, 9999].
func newOTP() int {
	return 1000 + mrand.Intn(9000)
}
