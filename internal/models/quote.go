package models

import "time"

// DefaultQuoteTTL is how long a fare quote stays bookable.
const DefaultQuoteTTL = 5 * time.Minute

// FareQuote is a time-boxed price commitment for a pickup/dropoff/product
// triple. Immutable once created; Expiry is always Created + TTL.
type FareQuote struct {
	ID      string    `json:"id"`
	Amount  float64   `json:"amount"`
	Product Product   `json:"product"`
	Pickup  Coord     `json:"pickup"`
	Dropoff Coord     `json:"dropoff"`
	Created time.Time `json:"created"`
	Expiry  time.Time `json:"expiry"`
}

func NewFareQuote(id string, amount float64, product Product, pickup, dropoff Coord, now time.Time, ttl time.Duration) FareQuote {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return FareQuote{
		ID:      id,
		Amount:  amount,
		Product: product,
		Pickup:  pickup,
		Dropoff: dropoff,
		Created: now,
		Expiry:  now.Add(ttl),
	}
}

// Expired reports whether the quote's validity window has elapsed.
// A quote is valid iff now <= expiry.
func (q FareQuote) Expired(now time.Time) bool {
	return now.After(q.Expiry)
}
