package answers

import (
	"github.com/Tap30/answers-go/adapters"
)

// Re-export adapter types for convenience
type (
	EventSink          = adapters.EventSink
	Transport          = adapters.Transport
	LoggerAdapter      = adapters.LoggerAdapter
	LogLevel           = adapters.LogLevel
	Attributes         = adapters.Attributes
	PurchaseEvent      = adapters.PurchaseEvent
	AddToCartEvent     = adapters.AddToCartEvent
	StartCheckoutEvent = adapters.StartCheckoutEvent
	ContentViewEvent   = adapters.ContentViewEvent
	SearchEvent        = adapters.SearchEvent
	ShareEvent         = adapters.ShareEvent
	RatingEvent        = adapters.RatingEvent
	SignUpEvent        = adapters.SignUpEvent
	LoginEvent         = adapters.LoginEvent
	InviteEvent        = adapters.InviteEvent
	LevelStartEvent    = adapters.LevelStartEvent
	LevelEndEvent      = adapters.LevelEndEvent
	CustomEvent        = adapters.CustomEvent
)

// EventCommand is the loosely-typed payload a script caller sends for one event.
type EventCommand = map[string]any

// Reserved command keys holding nested attribute maps.
const (
	CustomKey     = "custom"
	AttributesKey = "attributes"
)

// Status is the acknowledgment status returned to the caller.
type Status string

const StatusOK Status = "OK"

// Result acknowledges a command. Forwarding never fails from the caller's
// point of view, so every Result carries StatusOK.
type Result struct {
	Status Status `json:"status"`
}

// OK reports whether the result is a success acknowledgment.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

var okResult = Result{Status: StatusOK}

type ForwarderConfig struct {
	Sink          EventSink
	LoggerAdapter LoggerAdapter
}
