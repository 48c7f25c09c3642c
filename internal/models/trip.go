package models

import "sync"

// TripStatus enumerates the trip lifecycle. COMPLETED and CANCELLED are
// absorbing; no transition leaves them.
type TripStatus string

const (
	TripRequested TripStatus = "REQUESTED"
	TripAssigned  TripStatus = "ASSIGNED"
	TripInTransit TripStatus = "IN_TRANSIT"
	TripCompleted TripStatus = "COMPLETED"
	TripCancelled TripStatus = "CANCELLED"
)

// Trip owns the rider/driver pairing, the locked-in fare, the pickup OTP and
// the status. All mutation goes through the transition methods below; an
// illegal transition is a boolean no-op, never a panic or an error.
//
// Legal transitions:
//
//	REQUESTED  -> ASSIGNED   (Assign: driver attached, OTP set)
//	ASSIGNED   -> IN_TRANSIT (Start: correct OTP supplied)
//	IN_TRANSIT -> COMPLETED  (End: driver released)
//	REQUESTED  -> CANCELLED  (Cancel)
type Trip struct {
	ID      string
	Rider   *Rider
	Pickup  Coord
	Dropoff Coord
	Product Product
	Fare    float64 // locked in from the quote at booking time

	mu     sync.Mutex
	driver *Driver
	otp    int
	status TripStatus
}

// NewTrip creates a trip in REQUESTED state with no driver attached.
func NewTrip(id string, rider *Rider, pickup, dropoff Coord, product Product, fare float64) *Trip {
	return &Trip{
		ID:      id,
		Rider:   rider,
		Pickup:  pickup,
		Dropoff: dropoff,
		Product: product,
		Fare:    fare,
		status:  TripRequested,
	}
}

func (t *Trip) Status() TripStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Driver returns the attached driver, nil while unmatched. A nil driver on a
// trip returned by RequestRide is the soft no-driver-available signal.
func (t *Trip) Driver() *Driver {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.driver
}

// OTP returns the pickup code, 0 until assignment.
func (t *Trip) OTP() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.otp
}

// Assign attaches a successfully booked driver and moves the trip to
// ASSIGNED. The caller must already hold the booking (TryBook returned true).
func (t *Trip) Assign(d *Driver, otp int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TripRequested {
		return false
	}
	t.driver = d
	t.otp = otp
	t.status = TripAssigned
	return true
}

// Start verifies the OTP and moves ASSIGNED -> IN_TRANSIT.
func (t *Trip) Start(otp int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TripAssigned || t.otp != otp {
		return false
	}
	t.status = TripInTransit
	return true
}

// End moves IN_TRANSIT -> COMPLETED and releases the driver.
func (t *Trip) End() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TripInTransit {
		return false
	}
	t.status = TripCompleted
	if t.driver != nil {
		t.driver.MarkAvailable()
	}
	return true
}

// Cancel moves REQUESTED -> CANCELLED. Trips that already hold a driver
// cannot be cancelled through this path.
func (t *Trip) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TripRequested {
		return false
	}
	t.status = TripCancelled
	return true
}
