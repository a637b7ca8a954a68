package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CheckoutState is the lifecycle of a single order attempt at the counter.
type CheckoutState string

const (
	// StateBuilding: cart mutable, no bill.
	StateBuilding CheckoutState = "BUILDING"
	// StateQuoted: backend bill present, cart still mutable.
	StateQuoted CheckoutState = "QUOTED"
	// StateOrderPlaced: order created server-side, cart frozen, payment pending.
	StateOrderPlaced CheckoutState = "ORDER_PLACED"
	// StateSettled: payment confirmed. Terminal; the session resets to BUILDING.
	StateSettled CheckoutState = "SETTLED"
)

// validTransitions defines the allowed checkout state machine moves.
// ORDER_PLACED → QUOTED is the cancel-payment path.
var validTransitions = map[CheckoutState][]CheckoutState{
	StateBuilding:    {StateQuoted, StateOrderPlaced},
	StateQuoted:      {StateBuilding, StateOrderPlaced},
	StateOrderPlaced: {StateSettled, StateQuoted, StateBuilding},
}

// CanTransitionTo reports whether moving from s to next is valid.
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var (
	ErrInvalidTransition    = errors.New("invalid checkout state transition")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrTableNumberRequired  = errors.New("table number is required for dine-in orders")
	ErrCustomerNameRequired = errors.New("customer name is required for takeaway orders")
	ErrOrderLocked          = errors.New("cart is locked while an order awaits payment")
	ErrNoActiveOrder        = errors.New("no order awaiting payment")
	ErrInsufficientCash     = errors.New("cash received is less than the total amount")
	ErrRequestInFlight      = errors.New("a previous request is still in flight")
)

// FulfillmentMode determines which customer field an order needs.
type FulfillmentMode string

const (
	ModeDineIn   FulfillmentMode = "DINE_IN"  // requires a table number
	ModeTakeaway FulfillmentMode = "TAKEAWAY" // requires a customer name
)

var ErrInvalidFulfillmentMode = errors.New("invalid fulfillment mode")

func ParseFulfillmentMode(s string) (FulfillmentMode, error) {
	switch FulfillmentMode(s) {
	case ModeDineIn, ModeTakeaway:
		return FulfillmentMode(s), nil
	default:
		return "", ErrInvalidFulfillmentMode
	}
}

// PaymentMethod is how the customer settles the order. Only cash is checked
// locally (tendered amount must cover the total).
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentQRIS     PaymentMethod = "QRIS"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentQRIS, PaymentTransfer:
		return PaymentMethod(s), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// Bill is the backend's authoritative quote for a cart snapshot. The counter
// never computes tax or totals itself. JSON tags follow the backend shape.
type Bill struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Discount   decimal.Decimal `json:"discount"`
	GrandTotal decimal.Decimal `json:"total_amount"`
}

// Order is a backend-created entity. Immutable here except for its payment
// status, which the backend owns.
type Order struct {
	ID          string          `json:"id,omitempty"`
	Code        string          `json:"order_code"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status,omitempty"`
}
