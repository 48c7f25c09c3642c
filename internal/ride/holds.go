package ride

import "sync"

// holdTracker maps trip ids to outstanding payment hold ids.
type holdTracker struct {
	mu    sync.Mutex
	holds map[string]string
}

func newHoldTracker() *holdTracker {
	return &holdTracker{holds: make(map[string]string)}
}

func (h *holdTracker) set(tripID, holdID string) {
	h.mu.Lock()
	h.holds[tripID] = holdID
	h.mu.Unlock()
}

func (h *holdTracker) take(tripID string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.holds[tripID]
	if ok {
		delete(h.holds, tripID)
	}
	return id, ok
}
