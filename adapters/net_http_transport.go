package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetHTTPTransport is the standard HTTP transport implementation using net/http package.
type NetHTTPTransport struct {
	client   *http.Client
	endpoint string
	headers  map[string]string
}

// Ensure NetHTTPTransport implements Transport interface
var _ Transport = (*NetHTTPTransport)(nil)

// NewNetHTTPTransport creates a new NetHTTPTransport instance.
//
// Parameters:
//   - endpoint: The collector URL events are POSTed to
//   - headers: Extra headers sent with every request (API key, etc.)
//   - timeout: Per-request timeout; zero means no timeout
func NewNetHTTPTransport(endpoint string, headers map[string]string, timeout time.Duration) *NetHTTPTransport {
	return &NetHTTPTransport{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		headers:  headers,
	}
}

// Send posts a single event to the endpoint.
func (h *NetHTTPTransport) Send(ctx context.Context, event Event) error {
	payload := map[string]any{
		"event": event,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range h.headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Status: resp.StatusCode}
	}
	return nil
}
