package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesIssued   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_engine", Name: "quotes_issued_total", Help: "Fare quotes issued"})
	QuotesExpired  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_engine", Name: "quotes_expired_total", Help: "Ride requests rejected for expired quotes"})
	TripsAssigned  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_engine", Name: "trips_assigned_total", Help: "Trips that reached ASSIGNED"})
	TripsUnmatched = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_engine", Name: "trips_unmatched_total", Help: "Ride requests that found no bookable driver"})
	TripsCompleted = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_engine", Name: "trips_completed_total", Help: "Trips that reached COMPLETED"})
	TripsCancelled = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_engine", Name: "trips_cancelled_total", Help: "Trips cancelled before assignment"})
	BookingRaces   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_engine", Name: "booking_races_lost_total", Help: "TryBook attempts lost to a concurrent requester"})
	DriversOnline  = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "ride_engine", Name: "drivers_online", Help: "Drivers registered with the directory"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ride_engine", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ride_engine",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
