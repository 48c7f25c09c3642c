package dispatch

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// WSSession is one connected driver app. Writes are serialized per session;
// gorilla/websocket allows only one concurrent writer.
type WSSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *WSSession) Send(a Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(a)
}

// WSRegistry tracks live driver sockets and pushes assignments to them.
type WSRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*WSSession
}

func NewWSRegistry() *WSRegistry { return &WSRegistry{sessions: make(map[string]*WSSession)} }

// ErrNoSession is returned when the target driver has no live socket.
var ErrNoSession = errors.New("no ws session")

func (r *WSRegistry) Add(driverID string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.sessions[driverID]; ok {
		_ = old.conn.Close()
	}
	r.sessions[driverID] = &WSSession{conn: conn}
}

func (r *WSRegistry) Remove(driverID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, driverID)
}

func (r *WSRegistry) Offer(driverID string, a Assignment) error {
	r.mu.RLock()
	s, ok := r.sessions[driverID]
	r.mu.RUnlock()
	if !ok {
		return ErrNoSession
	}
	return s.Send(a)
}
