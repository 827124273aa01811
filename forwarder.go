package answers

import (
	"context"
	"errors"
	"sort"

	"github.com/Tap30/answers-go/adapters"
)

// Forwarder translates loosely-typed event commands into typed EventSink calls.
// It holds no per-call state and is safe for concurrent use as long as the
// sink is.
type Forwarder struct {
	sink          EventSink
	loggerAdapter LoggerAdapter
	handlers      map[string]func(context.Context, EventCommand) Result
}

// NewForwarder creates a forwarder delivering to config.Sink.
func NewForwarder(config ForwarderConfig) (*Forwarder, error) {
	if config.Sink == nil {
		return nil, errors.New("Sink is required")
	}

	f := &Forwarder{sink: config.Sink}

	// Use provided logger or default
	if config.LoggerAdapter != nil {
		f.loggerAdapter = config.LoggerAdapter
	} else {
		f.loggerAdapter = adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn)
	}

	f.handlers = map[string]func(context.Context, EventCommand) Result{
		"eventPurchase":      f.EventPurchase,
		"eventAddToCart":     f.EventAddToCart,
		"eventStartCheckout": f.EventStartCheckout,
		"eventContentView":   f.EventContentView,
		"eventSearch":        f.EventSearch,
		"eventShare":         f.EventShare,
		"eventRating":        f.EventRating,
		"eventSignUp":        f.EventSignUp,
		"eventLogin":         f.EventLogin,
		"eventInvite":        f.EventInvite,
		"eventLevelStart":    f.EventLevelStart,
		"eventLevelEnd":      f.EventLevelEnd,
		"eventCustom":        f.EventCustom,
	}
	return f, nil
}

// Actions returns the supported action names in sorted order.
func (f *Forwarder) Actions() []string {
	names := make([]string, 0, len(f.handlers))
	for name := range f.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches a host-plugin style command. The first argument, when it
// is a mapping, is the event command; anything else is treated as empty.
// Unknown actions are logged and still acknowledged.
func (f *Forwarder) Invoke(ctx context.Context, action string, args []any) Result {
	var cmd EventCommand
	if len(args) > 0 {
		cmd, _ = args[0].(map[string]any)
	}

	handler, found := f.handlers[action]
	if !found {
		f.loggerAdapter.Warn("Unknown action %q, acknowledging without forwarding", action)
		return okResult
	}
	return handler(ctx, cmd)
}

// forward issues one sink call and acknowledges the caller whatever happens.
// Errors and panics from the sink are logged, never returned.
func (f *Forwarder) forward(action string, call func() error) (result Result) {
	result = okResult
	defer func() {
		if r := recover(); r != nil {
			f.loggerAdapter.Error("Sink panicked for %s: %v", action, r)
		}
	}()

	if err := call(); err != nil {
		f.loggerAdapter.Warn("Sink failed for %s: %v", action, err)
		return
	}
	f.loggerAdapter.Debug("Forwarded %s", action)
	return
}

func (f *Forwarder) EventPurchase(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventPurchase", func() error {
		return f.sink.LogPurchase(ctx, PurchaseEvent{
			ItemPrice:  Decimal(cmd, "itemPrice"),
			Currency:   String(cmd, "currency"),
			Success:    Bool(cmd, "success"),
			ItemName:   String(cmd, "itemName"),
			ItemType:   String(cmd, "itemType"),
			ItemID:     String(cmd, "itemId"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventAddToCart(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventAddToCart", func() error {
		return f.sink.LogAddToCart(ctx, AddToCartEvent{
			ItemPrice:  Decimal(cmd, "itemPrice"),
			Currency:   String(cmd, "currency"),
			ItemName:   String(cmd, "itemName"),
			ItemType:   String(cmd, "itemType"),
			ItemID:     String(cmd, "itemId"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventStartCheckout(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventStartCheckout", func() error {
		return f.sink.LogStartCheckout(ctx, StartCheckoutEvent{
			TotalPrice: Decimal(cmd, "totalPrice"),
			Currency:   String(cmd, "currency"),
			ItemCount:  Double(cmd, "itemCount"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventContentView(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventContentView", func() error {
		return f.sink.LogContentView(ctx, ContentViewEvent{
			ContentName: String(cmd, "contentName"),
			ContentType: String(cmd, "contentType"),
			ContentID:   String(cmd, "contentId"),
			Attributes:  Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventSearch(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventSearch", func() error {
		return f.sink.LogSearch(ctx, SearchEvent{
			Query:      String(cmd, "query"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventShare(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventShare", func() error {
		return f.sink.LogShare(ctx, ShareEvent{
			Method:      String(cmd, "method"),
			ContentName: String(cmd, "contentName"),
			ContentType: String(cmd, "contentType"),
			ContentID:   String(cmd, "contentId"),
			Attributes:  Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventRating(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventRating", func() error {
		return f.sink.LogRating(ctx, RatingEvent{
			Rating:      Double(cmd, "rating"),
			ContentName: String(cmd, "contentName"),
			ContentType: String(cmd, "contentType"),
			ContentID:   String(cmd, "contentId"),
			Attributes:  Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventSignUp(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventSignUp", func() error {
		return f.sink.LogSignUp(ctx, SignUpEvent{
			Method:     String(cmd, "method"),
			Success:    Bool(cmd, "success"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventLogin(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventLogin", func() error {
		return f.sink.LogLogin(ctx, LoginEvent{
			Method:     String(cmd, "method"),
			Success:    Bool(cmd, "success"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventInvite(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventInvite", func() error {
		return f.sink.LogInvite(ctx, InviteEvent{
			Method:     String(cmd, "method"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventLevelStart(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventLevelStart", func() error {
		return f.sink.LogLevelStart(ctx, LevelStartEvent{
			LevelName:  String(cmd, "levelName"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

func (f *Forwarder) EventLevelEnd(ctx context.Context, cmd EventCommand) Result {
	return f.forward("eventLevelEnd", func() error {
		return f.sink.LogLevelEnd(ctx, LevelEndEvent{
			LevelName:  String(cmd, "levelName"),
			Score:      Double(cmd, "score"),
			Success:    Bool(cmd, "success"),
			Attributes: Nested(cmd, CustomKey),
		})
	})
}

// EventCustom reads its attributes from "attributes" rather than "custom",
// and falls back to "NoName" when the name is missing.
func (f *Forwarder) EventCustom(ctx context.Context, cmd EventCommand) Result {
	name := adapters.DefaultCustomEventName
	if s := String(cmd, "name"); s != nil {
		name = *s
	}
	return f.forward("eventCustom", func() error {
		return f.sink.LogCustomEvent(ctx, CustomEvent{
			Name:       name,
			Attributes: Nested(cmd, AttributesKey),
		})
	})
}
