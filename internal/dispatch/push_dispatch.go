package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Push delivers assignments over the driver's websocket when one is live and
// falls back to POSTing the payload to an external push gateway otherwise.
type Push struct {
	Endpoint string
	Client   *http.Client
	WS       *WSRegistry
}

func NewPush(endpoint string, ws *WSRegistry) *Push {
	return &Push{Endpoint: endpoint, Client: &http.Client{Timeout: 3 * time.Second}, WS: ws}
}

func (p *Push) Offer(driverID string, a Assignment) error {
	if p.WS != nil {
		if err := p.WS.Offer(driverID, a); err == nil {
			return nil
		}
	}
	if p.Endpoint == "" {
		return ErrNoSession
	}
	body, err := json.Marshal(map[string]any{"driver_id": driverID, "assignment": a})
	if err != nil {
		return err
	}
	resp, err := p.Client.Post(p.Endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway status %d", resp.StatusCode)
	}
	return nil
}
