package dispatch

import "github.com/example/ride-engine/internal/models"

// Assignment is the payload pushed to a driver when a trip is booked onto
// them. The OTP is deliberately absent: it travels to the rider only and the
// driver learns it at pickup.
type Assignment struct {
	TripID     string       `json:"trip_id"`
	RiderName  string       `json:"rider_name"`
	Pickup     models.Coord `json:"pickup"`
	Dropoff    models.Coord `json:"dropoff"`
	Fare       float64      `json:"fare"`
	ETASeconds float64      `json:"eta_seconds"`
}

// Dispatcher delivers an assignment to a driver, best-effort. A failed
// delivery never rolls back the booking.
type Dispatcher interface {
	Offer(driverID string, a Assignment) error
}
