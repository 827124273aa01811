package adapters

import "context"

// EventSink is the analytics SDK surface events are forwarded to.
// Implement this interface to plug in a vendor SDK or a test double.
//
// The forwarder issues exactly one call per command and does not report the
// returned error to its caller; implementations should treat every call as
// best-effort.
type EventSink interface {
	LogPurchase(ctx context.Context, e PurchaseEvent) error
	LogAddToCart(ctx context.Context, e AddToCartEvent) error
	LogStartCheckout(ctx context.Context, e StartCheckoutEvent) error
	LogContentView(ctx context.Context, e ContentViewEvent) error
	LogSearch(ctx context.Context, e SearchEvent) error
	LogShare(ctx context.Context, e ShareEvent) error
	LogRating(ctx context.Context, e RatingEvent) error
	LogSignUp(ctx context.Context, e SignUpEvent) error
	LogLogin(ctx context.Context, e LoginEvent) error
	LogInvite(ctx context.Context, e InviteEvent) error
	LogLevelStart(ctx context.Context, e LevelStartEvent) error
	LogLevelEnd(ctx context.Context, e LevelEndEvent) error
	LogCustomEvent(ctx context.Context, e CustomEvent) error
}

// Transport delivers a single generic Event somewhere.
// Implement this interface to use custom delivery channels.
type Transport interface {
	// Send delivers one event. There is no batching and no retry.
	Send(ctx context.Context, event Event) error
}
