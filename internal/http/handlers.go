package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/ride-engine/internal/dispatch"
	"github.com/example/ride-engine/internal/ingest"
	"github.com/example/ride-engine/internal/matching"
	"github.com/example/ride-engine/internal/models"
	"github.com/example/ride-engine/internal/ride"
	"github.com/example/ride-engine/internal/users"
)

// Relocator is implemented by directories that re-index a driver after a
// position update (the grid variant).
type Relocator interface {
	Relocate(d *models.Driver)
}

type Server struct {
	Ride     *ride.Service
	Matching *matching.Service
	Users    *users.Registry
	Kafka    *ingest.KafkaProducer // optional
	WSReg    *dispatch.WSRegistry
	Reindex  Relocator // optional

	logger *slog.Logger
	mux    *mux.Router
}

func NewServer(rideSvc *ride.Service, matchSvc *matching.Service, reg *users.Registry, wsreg *dispatch.WSRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		Ride:     rideSvc,
		Matching: matchSvc,
		Users:    reg,
		WSReg:    wsreg,
		logger:   logger,
		mux:      mux.NewRouter(),
	}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/quotes", s.handleQuote).Methods("POST")
	s.mux.HandleFunc("/api/v1/rides", s.handleRequestRide).Methods("POST")
	s.mux.HandleFunc("/api/v1/rides/{trip_id}/start", s.handleStartRide).Methods("POST")
	s.mux.HandleFunc("/api/v1/rides/{trip_id}/end", s.handleEndRide).Methods("POST")
	s.mux.HandleFunc("/api/v1/rides/{trip_id}/cancel", s.handleCancelRide).Methods("POST")
	s.mux.HandleFunc("/api/v1/rides/{trip_id}", s.handleGetRide).Methods("GET")
	s.mux.HandleFunc("/api/v1/drivers", s.handleRegisterDriver).Methods("POST")
	s.mux.HandleFunc("/api/v1/riders", s.handleRegisterRider).Methods("POST")
	s.mux.HandleFunc("/internal/driver/locations", s.handleDriverLocation).Methods("POST")
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/ws/{driver_id}", s.handleWS)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

type quoteRequest struct {
	Pickup  models.Coord       `json:"pickup"`
	Dropoff models.Coord       `json:"dropoff"`
	Product models.ProductType `json:"product"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	product, ok := models.ProductByType(req.Product)
	if !ok {
		http.Error(w, "unknown product", http.StatusBadRequest)
		return
	}
	quote := s.Ride.GetEstimate(req.Pickup, req.Dropoff, product)
	writeJSON(w, http.StatusOK, quote)
}

type rideRequest struct {
	RiderID string           `json:"rider_id"`
	Quote   models.FareQuote `json:"quote"`
}

type tripResponse struct {
	TripID   string            `json:"trip_id"`
	Status   models.TripStatus `json:"status"`
	DriverID string            `json:"driver_id,omitempty"`
	Fare     float64           `json:"fare"`
	OTP      int               `json:"otp,omitempty"`
}

func tripToResponse(t *models.Trip) tripResponse {
	resp := tripResponse{TripID: t.ID, Status: t.Status(), Fare: t.Fare, OTP: t.OTP()}
	if d := t.Driver(); d != nil {
		resp.DriverID = d.ID
	}
	return resp
}

func (s *Server) handleRequestRide(w http.ResponseWriter, r *http.Request) {
	var req rideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rider, ok := s.Users.Rider(req.RiderID)
	if !ok {
		http.Error(w, "unknown rider", http.StatusNotFound)
		return
	}
	trip, err := s.Ride.RequestRide(r.Context(), rider, req.Quote)
	if err != nil {
		if errors.Is(err, ride.ErrQuoteExpired) {
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	status := http.StatusCreated
	if trip.Driver() == nil {
		// Soft failure: booked nothing, the trip is returned for inspection.
		status = http.StatusAccepted
	}
	writeJSON(w, status, tripToResponse(trip))
}

type startRequest struct {
	OTP int `json:"otp"`
}

func (s *Server) handleStartRide(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tripID := mux.Vars(r)["trip_id"]
	if !s.Ride.StartRide(tripID, req.OTP) {
		http.Error(w, "cannot start ride", http.StatusConflict)
		return
	}
	s.writeTrip(w, tripID)
}

func (s *Server) handleEndRide(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["trip_id"]
	if !s.Ride.EndRide(r.Context(), tripID) {
		http.Error(w, "cannot end ride", http.StatusConflict)
		return
	}
	s.writeTrip(w, tripID)
}

func (s *Server) handleCancelRide(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["trip_id"]
	if !s.Ride.CancelRide(r.Context(), tripID) {
		http.Error(w, "cannot cancel ride", http.StatusConflict)
		return
	}
	s.writeTrip(w, tripID)
}

func (s *Server) handleGetRide(w http.ResponseWriter, r *http.Request) {
	s.writeTrip(w, mux.Vars(r)["trip_id"])
}

func (s *Server) writeTrip(w http.ResponseWriter, tripID string) {
	trip, ok := s.Ride.Trip(tripID)
	if !ok {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

type registerDriverRequest struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Phone   string         `json:"phone"`
	Loc     models.Coord   `json:"loc"`
	Rating  float64        `json:"rating"`
	Vehicle models.Vehicle `json:"vehicle"`
}

func (s *Server) handleRegisterDriver(w http.ResponseWriter, r *http.Request) {
	var req registerDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		req.ID = newID()
	}
	d := models.NewDriver(req.ID, req.Name, req.Phone, req.Loc, req.Vehicle, req.Rating)
	s.Users.AddDriver(d)
	s.Matching.AddDriver(d)
	writeJSON(w, http.StatusCreated, map[string]string{"driver_id": d.ID})
}

type registerRiderRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *Server) handleRegisterRider(w http.ResponseWriter, r *http.Request) {
	var req registerRiderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		req.ID = newID()
	}
	rider := models.NewRider(req.ID, req.Name, req.Phone)
	s.Users.AddRider(rider)
	writeJSON(w, http.StatusCreated, map[string]string{"rider_id": rider.ID})
}

type locationUpdateRequest struct {
	DriverID string       `json:"driver_id"`
	Loc      models.Coord `json:"loc"`
}

func (s *Server) handleDriverLocation(w http.ResponseWriter, r *http.Request) {
	var req locationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d, ok := s.Users.Driver(req.DriverID)
	if !ok {
		http.Error(w, "unknown driver", http.StatusNotFound)
		return
	}
	d.SetLocation(req.Loc)
	if s.Reindex != nil {
		s.Reindex.Relocate(d)
	}
	if s.Kafka != nil {
		update := ingest.LocationUpdate{DriverID: d.ID, Loc: req.Loc, Rating: d.Rating, ReportedAt: time.Now()}
		if err := s.Kafka.PublishLocation(update); err != nil {
			s.logger.Warn("location publish failed", "driver_id", d.ID, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

var upgrader = websocket.Upgrader{}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["driver_id"]
	if _, ok := s.Users.Driver(id); !ok {
		http.Error(w, "unknown driver", http.StatusNotFound)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}
	s.WSReg.Add(id, conn)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }
