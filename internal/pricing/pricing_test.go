package pricing

import (
	"testing"
	"time"

	"github.com/example/ride-engine/internal/models"
)

func TestStandardPrice(t *testing.T) {
	p, _ := models.ProductByType(models.ProductGo)
	got := Standard{}.Price(10, p)
	want := 50.0 + 10*10.0
	if got != want {
		t.Fatalf("standard price = %f, want %f", got, want)
	}
}

func TestNightPriceAppliesMultiplier(t *testing.T) {
	p, _ := models.ProductByType(models.ProductXL)
	day := Standard{}.Price(4, p)
	night := Night{}.Price(4, p)
	if night != day*nightMultiplier {
		t.Fatalf("night price = %f, want %f", night, day*nightMultiplier)
	}
}

func TestQuoteUsesNightRateAfterHours(t *testing.T) {
	p, _ := models.ProductByType(models.ProductGo)
	pickup := models.Coord{Lat: 0, Lon: 0}
	dropoff := models.Coord{Lat: 0.1, Lon: 0.1}

	noon := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	midnight := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)

	dayQuote := NewService(0, func() time.Time { return noon }).Quote(pickup, dropoff, p)
	nightQuote := NewService(0, func() time.Time { return midnight }).Quote(pickup, dropoff, p)

	if nightQuote.Amount <= dayQuote.Amount {
		t.Fatalf("night quote %f must exceed day quote %f", nightQuote.Amount, dayQuote.Amount)
	}
}

func TestQuoteExpirySetFromTTL(t *testing.T) {
	p, _ := models.ProductByType(models.ProductGo)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(5*time.Minute, func() time.Time { return at })

	q := svc.Quote(models.Coord{}, models.Coord{Lat: 1, Lon: 1}, p)
	if !q.Expiry.Equal(at.Add(5 * time.Minute)) {
		t.Fatalf("expiry = %v, want created+TTL", q.Expiry)
	}
	if q.ID == "" {
		t.Fatal("quote must carry an id")
	}
}
