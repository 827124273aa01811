package adapters

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a forwarded analytics event in transport form.
type Event struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes"`
	IssuedAt   int64          `json:"issuedAt"`
	Platform   *Platform      `json:"platform"`
}

// Platform represents the host platform the event was issued from.
type Platform struct {
	Type string `json:"type"`
}

var hybridPlatform = &Platform{Type: "hybrid"}

// NewEvent builds an Event stamped with a fresh ID and the current time.
// A nil attributes map is replaced with an empty one.
func NewEvent(name string, attributes map[string]any) Event {
	if attributes == nil {
		attributes = make(map[string]any)
	}
	return Event{
		ID:         uuid.NewString(),
		Name:       name,
		Attributes: attributes,
		IssuedAt:   time.Now().UnixMilli(),
		Platform:   hybridPlatform,
	}
}

// HTTPError is returned by HTTP transports when the endpoint answers with a non-2xx status.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return "HTTP request failed"
}
