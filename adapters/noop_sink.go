package adapters

import "context"

// NoOpSink is an event sink that discards every event.
// Useful when analytics are disabled for a build or environment.
type NoOpSink struct{}

var _ EventSink = (*NoOpSink)(nil)

// NewNoOpSink creates a new NoOpSink instance.
func NewNoOpSink() *NoOpSink {
	return &NoOpSink{}
}

func (n *NoOpSink) LogPurchase(context.Context, PurchaseEvent) error           { return nil }
func (n *NoOpSink) LogAddToCart(context.Context, AddToCartEvent) error         { return nil }
func (n *NoOpSink) LogStartCheckout(context.Context, StartCheckoutEvent) error { return nil }
func (n *NoOpSink) LogContentView(context.Context, ContentViewEvent) error     { return nil }
func (n *NoOpSink) LogSearch(context.Context, SearchEvent) error               { return nil }
func (n *NoOpSink) LogShare(context.Context, ShareEvent) error                 { return nil }
func (n *NoOpSink) LogRating(context.Context, RatingEvent) error               { return nil }
func (n *NoOpSink) LogSignUp(context.Context, SignUpEvent) error               { return nil }
func (n *NoOpSink) LogLogin(context.Context, LoginEvent) error                 { return nil }
func (n *NoOpSink) LogInvite(context.Context, InviteEvent) error               { return nil }
func (n *NoOpSink) LogLevelStart(context.Context, LevelStartEvent) error       { return nil }
func (n *NoOpSink) LogLevelEnd(context.Context, LevelEndEvent) error           { return nil }
func (n *NoOpSink) LogCustomEvent(context.Context, CustomEvent) error          { return nil }
