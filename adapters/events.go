package adapters

import "github.com/shopspring/decimal"

// Attributes is a free-form key-value mapping passed through to the sink unchanged.
type Attributes = map[string]any

// Every optional field below is a pointer; nil means the caller did not supply
// a value of the expected type. Boolean outcomes are carried as 1 or 0.

type PurchaseEvent struct {
	ItemPrice  *decimal.Decimal
	Currency   *string
	Success    *int
	ItemName   *string
	ItemType   *string
	ItemID     *string
	Attributes Attributes
}

type AddToCartEvent struct {
	ItemPrice  *decimal.Decimal
	Currency   *string
	ItemName   *string
	ItemType   *string
	ItemID     *string
	Attributes Attributes
}

type StartCheckoutEvent struct {
	TotalPrice *decimal.Decimal
	Currency   *string
	ItemCount  *float64
	Attributes Attributes
}

type ContentViewEvent struct {
	ContentName *string
	ContentType *string
	ContentID   *string
	Attributes  Attributes
}

type SearchEvent struct {
	Query      *string
	Attributes Attributes
}

type ShareEvent struct {
	Method      *string
	ContentName *string
	ContentType *string
	ContentID   *string
	Attributes  Attributes
}

type RatingEvent struct {
	Rating      *float64
	ContentName *string
	ContentType *string
	ContentID   *string
	Attributes  Attributes
}

type SignUpEvent struct {
	Method     *string
	Success    *int
	Attributes Attributes
}

type LoginEvent struct {
	Method     *string
	Success    *int
	Attributes Attributes
}

type InviteEvent struct {
	Method     *string
	Attributes Attributes
}

type LevelStartEvent struct {
	LevelName  *string
	Attributes Attributes
}

type LevelEndEvent struct {
	LevelName  *string
	Score      *float64
	Success    *int
	Attributes Attributes
}

// CustomEvent always carries a name; callers that omit one get DefaultCustomEventName.
type CustomEvent struct {
	Name       string
	Attributes Attributes
}

// DefaultCustomEventName is used when a custom event arrives without a name.
const DefaultCustomEventName = "NoName"
