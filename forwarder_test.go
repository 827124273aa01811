package answers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Tap30/answers-go/adapters"
)

type sinkCall struct {
	method string
	event  any
}

// recordingSink records every call and optionally fails or panics.
type recordingSink struct {
	calls []sinkCall
	err   error
	panic bool
}

func (r *recordingSink) record(method string, event any) error {
	r.calls = append(r.calls, sinkCall{method: method, event: event})
	if r.panic {
		panic("sdk exploded")
	}
	return r.err
}

func (r *recordingSink) LogPurchase(_ context.Context, e PurchaseEvent) error {
	return r.record("LogPurchase", e)
}
func (r *recordingSink) LogAddToCart(_ context.Context, e AddToCartEvent) error {
	return r.record("LogAddToCart", e)
}
func (r *recordingSink) LogStartCheckout(_ context.Context, e StartCheckoutEvent) error {
	return r.record("LogStartCheckout", e)
}
func (r *recordingSink) LogContentView(_ context.Context, e ContentViewEvent) error {
	return r.record("LogContentView", e)
}
func (r *recordingSink) LogSearch(_ context.Context, e SearchEvent) error {
	return r.record("LogSearch", e)
}
func (r *recordingSink) LogShare(_ context.Context, e ShareEvent) error {
	return r.record("LogShare", e)
}
func (r *recordingSink) LogRating(_ context.Context, e RatingEvent) error {
	return r.record("LogRating", e)
}
func (r *recordingSink) LogSignUp(_ context.Context, e SignUpEvent) error {
	return r.record("LogSignUp", e)
}
func (r *recordingSink) LogLogin(_ context.Context, e LoginEvent) error {
	return r.record("LogLogin", e)
}
func (r *recordingSink) LogInvite(_ context.Context, e InviteEvent) error {
	return r.record("LogInvite", e)
}
func (r *recordingSink) LogLevelStart(_ context.Context, e LevelStartEvent) error {
	return r.record("LogLevelStart", e)
}
func (r *recordingSink) LogLevelEnd(_ context.Context, e LevelEndEvent) error {
	return r.record("LogLevelEnd", e)
}
func (r *recordingSink) LogCustomEvent(_ context.Context, e CustomEvent) error {
	return r.record("LogCustomEvent", e)
}

func newTestForwarder(t *testing.T, sink *recordingSink) *Forwarder {
	t.Helper()
	f, err := NewForwarder(ForwarderConfig{
		Sink:          sink,
		LoggerAdapter: adapters.NewNoOpLoggerAdapter(),
	})
	require.NoError(t, err)
	return f
}

func s(v string) *string   { return &v }
func n(v float64) *float64 { return &v }
func b(v int) *int         { return &v }
func d(v string) *decimal.Decimal {
	dec := decimal.RequireFromString(v)
	return &dec
}

func TestNewForwarder(t *testing.T) {
	t.Run("should require a sink", func(t *testing.T) {
		_, err := NewForwarder(ForwarderConfig{})
		require.EqualError(t, err, "Sink is required")
	})

	t.Run("should default the logger", func(t *testing.T) {
		f, err := NewForwarder(ForwarderConfig{Sink: &recordingSink{}})
		require.NoError(t, err)
		require.IsType(t, &adapters.PrintLoggerAdapter{}, f.loggerAdapter)
	})
}

func TestForwarder_FullyPopulatedCommands(t *testing.T) {
	custom := map[string]any{"source": "home"}

	cases := []struct {
		action string
		cmd    EventCommand
		method string
		want   any
	}{
		{
			action: "eventPurchase",
			cmd: EventCommand{"itemPrice": 19.99, "currency": "USD", "success": true,
				"itemName": "Hat", "itemType": "apparel", "itemId": "sku-1", "custom": custom},
			method: "LogPurchase",
			want: PurchaseEvent{ItemPrice: d("19.99"), Currency: s("USD"), Success: b(1),
				ItemName: s("Hat"), ItemType: s("apparel"), ItemID: s("sku-1"), Attributes: custom},
		},
		{
			action: "eventAddToCart",
			cmd: EventCommand{"itemPrice": 5, "currency": "EUR", "itemName": "Cap",
				"itemType": "apparel", "itemId": "sku-2", "custom": custom},
			method: "LogAddToCart",
			want: AddToCartEvent{ItemPrice: d("5"), Currency: s("EUR"), ItemName: s("Cap"),
				ItemType: s("apparel"), ItemID: s("sku-2"), Attributes: custom},
		},
		{
			action: "eventStartCheckout",
			cmd:    EventCommand{"totalPrice": 42.5, "currency": "USD", "itemCount": 3, "custom": custom},
			method: "LogStartCheckout",
			want:   StartCheckoutEvent{TotalPrice: d("42.5"), Currency: s("USD"), ItemCount: n(3), Attributes: custom},
		},
		{
			action: "eventContentView",
			cmd:    EventCommand{"contentName": "Intro", "contentType": "video", "contentId": "v1", "custom": custom},
			method: "LogContentView",
			want:   ContentViewEvent{ContentName: s("Intro"), ContentType: s("video"), ContentID: s("v1"), Attributes: custom},
		},
		{
			action: "eventSearch",
			cmd:    EventCommand{"query": "red shoes", "custom": custom},
			method: "LogSearch",
			want:   SearchEvent{Query: s("red shoes"), Attributes: custom},
		},
		{
			action: "eventShare",
			cmd: EventCommand{"method": "twitter", "contentName": "Intro", "contentType": "video",
				"contentId": "v1", "custom": custom},
			method: "LogShare",
			want: ShareEvent{Method: s("twitter"), ContentName: s("Intro"), ContentType: s("video"),
				ContentID: s("v1"), Attributes: custom},
		},
		{
			action: "eventRating",
			cmd:    EventCommand{"rating": 4, "contentName": "Intro", "contentType": "video", "contentId": "v1", "custom": custom},
			method: "LogRating",
			want:   RatingEvent{Rating: n(4), ContentName: s("Intro"), ContentType: s("video"), ContentID: s("v1"), Attributes: custom},
		},
		{
			action: "eventSignUp",
			cmd:    EventCommand{"method": "email", "success": false, "custom": custom},
			method: "LogSignUp",
			want:   SignUpEvent{Method: s("email"), Success: b(0), Attributes: custom},
		},
		{
			action: "eventLogin",
			cmd:    EventCommand{"method": "google", "success": true, "custom": custom},
			method: "LogLogin",
			want:   LoginEvent{Method: s("google"), Success: b(1), Attributes: custom},
		},
		{
			action: "eventInvite",
			cmd:    EventCommand{"method": "sms", "custom": custom},
			method: "LogInvite",
			want:   InviteEvent{Method: s("sms"), Attributes: custom},
		},
		{
			action: "eventLevelStart",
			cmd:    EventCommand{"levelName": "1-1", "custom": custom},
			method: "LogLevelStart",
			want:   LevelStartEvent{LevelName: s("1-1"), Attributes: custom},
		},
		{
			action: "eventLevelEnd",
			cmd:    EventCommand{"levelName": "1-1", "score": 1200, "success": true, "custom": custom},
			method: "LogLevelEnd",
			want:   LevelEndEvent{LevelName: s("1-1"), Score: n(1200), Success: b(1), Attributes: custom},
		},
		{
			action: "eventCustom",
			cmd:    EventCommand{"name": "tutorial_done", "attributes": map[string]any{"step": 3}},
			method: "LogCustomEvent",
			want:   CustomEvent{Name: "tutorial_done", Attributes: map[string]any{"step": 3}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			sink := &recordingSink{}
			f := newTestForwarder(t, sink)

			result := f.Invoke(context.Background(), tc.action, []any{map[string]any(tc.cmd)})

			require.True(t, result.OK())
			require.Len(t, sink.calls, 1)
			require.Equal(t, tc.method, sink.calls[0].method)
			require.Equal(t, tc.want, sink.calls[0].event)
		})
	}
}

func TestForwarder_MissingFieldIsAbsentOnly(t *testing.T) {
	cases := []struct {
		action string
		cmd    EventCommand
		want   any
	}{
		{
			action: "eventPurchase",
			cmd:    EventCommand{"currency": "USD", "success": true, "itemName": "Hat", "itemType": "apparel", "itemId": "sku-1"},
			want:   PurchaseEvent{Currency: s("USD"), Success: b(1), ItemName: s("Hat"), ItemType: s("apparel"), ItemID: s("sku-1")},
		},
		{
			action: "eventStartCheckout",
			cmd:    EventCommand{"totalPrice": 42.5, "itemCount": 3},
			want:   StartCheckoutEvent{TotalPrice: d("42.5"), ItemCount: n(3)},
		},
		{
			action: "eventRating",
			cmd:    EventCommand{"contentName": "Intro", "contentType": "video", "contentId": "v-1"},
			want:   RatingEvent{ContentName: s("Intro"), ContentType: s("video"), ContentID: s("v-1")},
		},
		{
			action: "eventLevelEnd",
			cmd:    EventCommand{"levelName": "1-1", "success": false},
			want:   LevelEndEvent{LevelName: s("1-1"), Success: b(0)},
		},
		{
			action: "eventShare",
			cmd:    EventCommand{"method": "twitter", "contentName": "Intro", "contentId": "v-1"},
			want:   ShareEvent{Method: s("twitter"), ContentName: s("Intro"), ContentID: s("v-1")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			sink := &recordingSink{}
			f := newTestForwarder(t, sink)

			result := f.Invoke(context.Background(), tc.action, []any{map[string]any(tc.cmd)})

			require.True(t, result.OK())
			require.Len(t, sink.calls, 1)
			require.Equal(t, tc.want, sink.calls[0].event)
		})
	}
}

func TestForwarder_WrongTypesCoerceToAbsent(t *testing.T) {
	sink := &recordingSink{}
	f := newTestForwarder(t, sink)

	result := f.EventLevelEnd(context.Background(), EventCommand{
		"levelName": 7, "score": "lots", "success": "yes", "custom": "not a map",
	})

	require.True(t, result.OK())
	require.Equal(t, LevelEndEvent{}, sink.calls[0].event)
}

func TestForwarder_CustomEvent(t *testing.T) {
	t.Run("should default the name", func(t *testing.T) {
		sink := &recordingSink{}
		f := newTestForwarder(t, sink)

		f.EventCustom(context.Background(), EventCommand{})
		require.Equal(t, CustomEvent{Name: "NoName"}, sink.calls[0].event)
	})

	t.Run("should default a non-string name", func(t *testing.T) {
		sink := &recordingSink{}
		f := newTestForwarder(t, sink)

		f.EventCustom(context.Background(), EventCommand{"name": 42})
		require.Equal(t, "NoName", sink.calls[0].event.(CustomEvent).Name)
	})

	t.Run("should keep an explicit empty name", func(t *testing.T) {
		sink := &recordingSink{}
		f := newTestForwarder(t, sink)

		f.EventCustom(context.Background(), EventCommand{"name": ""})
		require.Equal(t, CustomEvent{Name: ""}, sink.calls[0].event)
	})

	t.Run("should read attributes, not custom", func(t *testing.T) {
		sink := &recordingSink{}
		f := newTestForwarder(t, sink)

		f.EventCustom(context.Background(), EventCommand{
			"name":       "boss_defeated",
			"custom":     map[string]any{"ignored": true},
			"attributes": map[string]any{"boss": "dragon"},
		})
		require.Equal(t, Attributes{"boss": "dragon"}, sink.calls[0].event.(CustomEvent).Attributes)
	})

	t.Run("should pass nil attributes when only custom is given", func(t *testing.T) {
		sink := &recordingSink{}
		f := newTestForwarder(t, sink)

		f.EventCustom(context.Background(), EventCommand{"custom": map[string]any{"ignored": true}})
		require.Nil(t, sink.calls[0].event.(CustomEvent).Attributes)
	})
}

func TestForwarder_AlwaysAcknowledges(t *testing.T) {
	t.Run("should acknowledge when the sink fails", func(t *testing.T) {
		sink := &recordingSink{err: errors.New("sdk offline")}
		f := newTestForwarder(t, sink)

		require.True(t, f.EventSearch(context.Background(), EventCommand{"query": "q"}).OK())
		require.Len(t, sink.calls, 1)
	})

	t.Run("should acknowledge when the sink panics", func(t *testing.T) {
		sink := &recordingSink{panic: true}
		f := newTestForwarder(t, sink)

		require.True(t, f.EventLogin(context.Background(), nil).OK())
		require.Len(t, sink.calls, 1)
	})

	t.Run("should acknowledge every action with a nil command", func(t *testing.T) {
		sink := &recordingSink{}
		f := newTestForwarder(t, sink)

		for _, action := range f.Actions() {
			require.True(t, f.Invoke(context.Background(), action, nil).OK(), action)
		}
		require.Len(t, sink.calls, 13)
	})

	t.Run("should acknowledge unknown actions without calling the sink", func(t *testing.T) {
		sink := &recordingSink{}
		f := newTestForwarder(t, sink)

		require.True(t, f.Invoke(context.Background(), "eventTeleport", []any{map[string]any{}}).OK())
		require.Empty(t, sink.calls)
	})

	t.Run("should treat a non-map first argument as empty", func(t *testing.T) {
		sink := &recordingSink{}
		f := newTestForwarder(t, sink)

		require.True(t, f.Invoke(context.Background(), "eventSearch", []any{"query"}).OK())
		require.Equal(t, SearchEvent{}, sink.calls[0].event)
	})
}

func TestForwarder_Actions(t *testing.T) {
	f := newTestForwarder(t, &recordingSink{})

	require.Equal(t, []string{
		"eventAddToCart", "eventContentView", "eventCustom", "eventInvite",
		"eventLevelEnd", "eventLevelStart", "eventLogin", "eventPurchase",
		"eventRating", "eventSearch", "eventShare", "eventSignUp", "eventStartCheckout",
	}, f.Actions())
}

func TestForwarder_WithTrackingSink(t *testing.T) {
	logger := &capturingLogger{}
	sink, err := adapters.NewTrackingSink(adapters.NewLogTransport(logger))
	require.NoError(t, err)

	f, err := NewForwarder(ForwarderConfig{Sink: sink, LoggerAdapter: adapters.NewNoOpLoggerAdapter()})
	require.NoError(t, err)

	require.True(t, f.EventPurchase(context.Background(), EventCommand{"itemPrice": 19.99, "currency": "USD"}).OK())
	require.Len(t, logger.infos, 1)
	require.Contains(t, logger.infos[0], `"itemPrice":"19.99"`)
	require.Contains(t, logger.infos[0], `"currency":"USD"`)
}

type capturingLogger struct {
	adapters.NoOpLoggerAdapter
	infos []string
}

func (c *capturingLogger) Info(message string, args ...any) {
	c.infos = append(c.infos, fmt.Sprintf(message, args...))
}
