package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FCM posts assignments to an FCM HTTPv1 endpoint, for driver apps that only
// receive mobile push. TokenFor maps a driver id to their device token.
type FCM struct {
	Endpoint string
	Key      string
	TokenFor func(driverID string) string
	Client   *http.Client
}

func NewFCM(endpoint, key string, tokenFor func(string) string) *FCM {
	return &FCM{Endpoint: endpoint, Key: key, TokenFor: tokenFor, Client: &http.Client{Timeout: 3 * time.Second}}
}

func (f *FCM) Offer(driverID string, a Assignment) error {
	token := ""
	if f.TokenFor != nil {
		token = f.TokenFor(driverID)
	}
	body := map[string]any{"message": map[string]any{"token": token, "data": map[string]any{"assignment": a}}}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, f.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if f.Key != "" {
		req.Header.Set("Authorization", "Bearer "+f.Key)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("fcm status %d", resp.StatusCode)
	}
	return nil
}
