package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kedaipos/counter/internal/core/domain"
)

// CartLineView is one cart line flattened for the UI.
type CartLineView struct {
	MenuID    string          `json:"menuId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// StateSnapshot is the complete presentation state of one session's order
// attempt. It is returned by every state-changing operation and pushed to
// websocket subscribers, so the UI always renders from a single source.
type StateSnapshot struct {
	State        domain.CheckoutState `json:"state"`
	Lines        []CartLineView       `json:"lines"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	Bill         *domain.Bill         `json:"bill,omitempty"`
	QuotePending bool                 `json:"quotePending"`
	QuoteError   string               `json:"quoteError,omitempty"`
	OrderCode    string               `json:"orderCode,omitempty"`
}

// PlaceOrderInput carries the checkout form fields.
type PlaceOrderInput struct {
	Mode         string
	TableNumber  string
	CustomerName string
}

// ConfirmPaymentInput carries the payment form fields. Tendered is only
// meaningful for cash.
type ConfirmPaymentInput struct {
	Method   string
	Tendered decimal.Decimal
}

// PaymentOutcome is returned when a payment settles.
type PaymentOutcome struct {
	OrderCode string
	Method    domain.PaymentMethod
	Change    decimal.Decimal
	Snapshot  StateSnapshot
}

// CheckoutService is the flow controller for the order attempt: cart
// mutation, debounced bill quoting, order creation, and payment settlement.
type CheckoutService interface {
	AddItem(ctx context.Context, sessionID uuid.UUID, menuID string) (*StateSnapshot, error)
	// SetQuantity clamps negative quantities to zero before touching the cart.
	SetQuantity(ctx context.Context, sessionID uuid.UUID, menuID string, quantity int) (*StateSnapshot, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, menuID string) (*StateSnapshot, error)
	ClearCart(ctx context.Context, sessionID uuid.UUID) (*StateSnapshot, error)
	PlaceOrder(ctx context.Context, sessionID uuid.UUID, input PlaceOrderInput) (*StateSnapshot, error)
	ConfirmPayment(ctx context.Context, sessionID uuid.UUID, input ConfirmPaymentInput) (*PaymentOutcome, error)
	// CancelPayment abandons the placed order client-side and unfreezes the
	// cart. The backend keeps the unconfirmed order; no void call is made.
	CancelPayment(ctx context.Context, sessionID uuid.UUID) (*StateSnapshot, error)
	State(ctx context.Context, sessionID uuid.UUID) (*StateSnapshot, error)
}

// StateNotifier pushes snapshots to whoever renders them. Implemented by the
// websocket hub; a no-op implementation is fine for tests.
type StateNotifier interface {
	Publish(sessionID uuid.UUID, snapshot StateSnapshot)
}
