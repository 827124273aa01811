package adapters

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Event names emitted by TrackingSink. Custom events use their own name.
const (
	EventNamePurchase      = "purchase"
	EventNameAddToCart     = "addToCart"
	EventNameStartCheckout = "startCheckout"
	EventNameContentView   = "contentView"
	EventNameSearch        = "search"
	EventNameShare         = "share"
	EventNameRating        = "rating"
	EventNameSignUp        = "signUp"
	EventNameLogin         = "login"
	EventNameInvite        = "invite"
	EventNameLevelStart    = "levelStart"
	EventNameLevelEnd      = "levelEnd"
)

// customKey holds the passthrough attributes inside a flattened event.
const customKey = "custom"

// TrackingSink converts typed events into generic Events and sends each one
// through a Transport. Absent fields are left out of the attribute map.
type TrackingSink struct {
	transport Transport
}

var _ EventSink = (*TrackingSink)(nil)

// NewTrackingSink creates a sink delivering through the given transport.
func NewTrackingSink(transport Transport) (*TrackingSink, error) {
	if transport == nil {
		return nil, errors.New("transport must be provided")
	}
	return &TrackingSink{transport: transport}, nil
}

type fields map[string]any

func (f fields) str(key string, v *string) fields {
	if v != nil {
		f[key] = *v
	}
	return f
}

func (f fields) num(key string, v *float64) fields {
	if v != nil {
		f[key] = *v
	}
	return f
}

func (f fields) dec(key string, v *decimal.Decimal) fields {
	if v != nil {
		f[key] = v.String()
	}
	return f
}

func (f fields) flag(key string, v *int) fields {
	if v != nil {
		f[key] = *v
	}
	return f
}

func (f fields) custom(attrs Attributes) map[string]any {
	if attrs != nil {
		f[customKey] = attrs
	}
	return f
}

func (s *TrackingSink) send(ctx context.Context, name string, attrs map[string]any) error {
	return s.transport.Send(ctx, NewEvent(name, attrs))
}

func (s *TrackingSink) LogPurchase(ctx context.Context, e PurchaseEvent) error {
	return s.send(ctx, EventNamePurchase, fields{}.
		dec("itemPrice", e.ItemPrice).
		str("currency", e.Currency).
		flag("success", e.Success).
		str("itemName", e.ItemName).
		str("itemType", e.ItemType).
		str("itemId", e.ItemID).
		custom(e.Attributes))
}

func (s *TrackingSink) LogAddToCart(ctx context.Context, e AddToCartEvent) error {
	return s.send(ctx, EventNameAddToCart, fields{}.
		dec("itemPrice", e.ItemPrice).
		str("currency", e.Currency).
		str("itemName", e.ItemName).
		str("itemType", e.ItemType).
		str("itemId", e.ItemID).
		custom(e.Attributes))
}

func (s *TrackingSink) LogStartCheckout(ctx context.Context, e StartCheckoutEvent) error {
	return s.send(ctx, EventNameStartCheckout, fields{}.
		dec("totalPrice", e.TotalPrice).
		str("currency", e.Currency).
		num("itemCount", e.ItemCount).
		custom(e.Attributes))
}

func (s *TrackingSink) LogContentView(ctx context.Context, e ContentViewEvent) error {
	return s.send(ctx, EventNameContentView, fields{}.
		str("contentName", e.ContentName).
		str("contentType", e.ContentType).
		str("contentId", e.ContentID).
		custom(e.Attributes))
}

func (s *TrackingSink) LogSearch(ctx context.Context, e SearchEvent) error {
	return s.send(ctx, EventNameSearch, fields{}.
		str("query", e.Query).
		custom(e.Attributes))
}

func (s *TrackingSink) LogShare(ctx context.Context, e ShareEvent) error {
	return s.send(ctx, EventNameShare, fields{}.
		str("method", e.Method).
		str("contentName", e.ContentName).
		str("contentType", e.ContentType).
		str("contentId", e.ContentID).
		custom(e.Attributes))
}

func (s *TrackingSink) LogRating(ctx context.Context, e RatingEvent) error {
	return s.send(ctx, EventNameRating, fields{}.
		num("rating", e.Rating).
		str("contentName", e.ContentName).
		str("contentType", e.ContentType).
		str("contentId", e.ContentID).
		custom(e.Attributes))
}

func (s *TrackingSink) LogSignUp(ctx context.Context, e SignUpEvent) error {
	return s.send(ctx, EventNameSignUp, fields{}.
		str("method", e.Method).
		flag("success", e.Success).
		custom(e.Attributes))
}

func (s *TrackingSink) LogLogin(ctx context.Context, e LoginEvent) error {
	return s.send(ctx, EventNameLogin, fields{}.
		str("method", e.Method).
		flag("success", e.Success).
		custom(e.Attributes))
}

func (s *TrackingSink) LogInvite(ctx context.Context, e InviteEvent) error {
	return s.send(ctx, EventNameInvite, fields{}.
		str("method", e.Method).
		custom(e.Attributes))
}

func (s *TrackingSink) LogLevelStart(ctx context.Context, e LevelStartEvent) error {
	return s.send(ctx, EventNameLevelStart, fields{}.
		str("levelName", e.LevelName).
		custom(e.Attributes))
}

func (s *TrackingSink) LogLevelEnd(ctx context.Context, e LevelEndEvent) error {
	return s.send(ctx, EventNameLevelEnd, fields{}.
		str("levelName", e.LevelName).
		num("score", e.Score).
		flag("success", e.Success).
		custom(e.Attributes))
}

// LogCustomEvent sends the event under its own name, as given, with its
// attributes nested under "custom" like every other kind.
func (s *TrackingSink) LogCustomEvent(ctx context.Context, e CustomEvent) error {
	return s.send(ctx, e.Name, fields{}.custom(e.Attributes))
}
