package pricing

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/example/ride-engine/internal/geo"
	"github.com/example/ride-engine/internal/models"
	"github.com/example/ride-engine/internal/observability"
)

// Strategy computes a fare from a trip distance and a product rate card.
// Pure function, no shared state.
type Strategy interface {
	Price(distanceKm float64, product models.Product) float64
}

// Standard is the daytime formula: base + distance * per-km rate.
type Standard struct{}

func (Standard) Price(distanceKm float64, product models.Product) float64 {
	return product.BaseRate + distanceKm*product.PerKmRate
}

// Night applies a surge multiplier on top of the standard formula between
// 22:00 and 06:00 local time.
type Night struct{}

const nightMultiplier = 1.5

func (Night) Price(distanceKm float64, product models.Product) float64 {
	return (product.BaseRate + distanceKm*product.PerKmRate) * nightMultiplier
}

// Service issues TTL-bound fare quotes. The clock is injectable so tests can
// pin day/night selection and quote timestamps.
type Service struct {
	ttl time.Duration
	now func() time.Time
}

func NewService(ttl time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = models.DefaultQuoteTTL
	}
	return &Service{ttl: ttl, now: now}
}

// strategyFor picks night pricing outside 06:00-22:00. Policy, not core.
func (s *Service) strategyFor(t time.Time) Strategy {
	h := t.Hour()
	if h < 6 || h >= 22 {
		return Night{}
	}
	return Standard{}
}

// Quote prices the pickup/dropoff pair and wraps the amount in a fresh
// TTL-bound FareQuote.
func (s *Service) Quote(pickup, dropoff models.Coord, product models.Product) models.FareQuote {
	now := s.now()
	distKm := geo.Haversine(pickup.Lat, pickup.Lon, dropoff.Lat, dropoff.Lon) / 1000
	amount := s.strategyFor(now).Price(distKm, product)
	observability.QuotesIssued.Inc()
	return models.NewFareQuote(newQuoteID(), amount, product, pickup, dropoff, now, s.ttl)
}

func newQuoteID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "q_" + hex.EncodeToString(b)
}
