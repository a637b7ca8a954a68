package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kedaipos/counter/internal/api/metrics"
	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/core/ports"
)

// quoteTimeout bounds the background bill request; interactive calls carry
// the request context instead.
const quoteTimeout = 15 * time.Second

// CheckoutService is the flow controller for a session's order attempt:
// cart mutation, debounced bill quoting, order creation, and payment
// settlement. One attempt is tracked per session at a time.
type CheckoutService struct {
	gateway  ports.BackendGateway
	sessions *Sessions
	notifier ports.StateNotifier
	quotes   *quoteScheduler
	logger   zerolog.Logger
}

func NewCheckoutService(
	gateway ports.BackendGateway,
	sessions *Sessions,
	notifier ports.StateNotifier,
	quoteDebounce time.Duration,
	logger zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		gateway:  gateway,
		sessions: sessions,
		notifier: notifier,
		quotes:   newQuoteScheduler(quoteDebounce),
		logger:   logger,
	}
}

// AddItem puts one unit of a catalog item in the cart.
func (s *CheckoutService) AddItem(ctx context.Context, sessionID uuid.UUID, menuID string) (*ports.StateSnapshot, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state == domain.StateOrderPlaced {
		sess.mu.Unlock()
		return nil, domain.ErrOrderLocked
	}
	menu, ok := sess.menus[menuID]
	if !ok {
		sess.mu.Unlock()
		return nil, domain.ErrMenuNotFound
	}
	if !menu.Available {
		sess.mu.Unlock()
		return nil, domain.ErrMenuUnavailable
	}
	sess.cart.AddLine(menu)
	s.cartMutatedLocked(sess)
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	s.publish(sess.id, snap)
	return &snap, nil
}

// SetQuantity assigns a line's quantity. Negative input is clamped to zero
// here; the cart itself performs no validation. Unknown lines are a no-op,
// but the bill is still invalidated like any other mutation.
func (s *CheckoutService) SetQuantity(ctx context.Context, sessionID uuid.UUID, menuID string, quantity int) (*ports.StateSnapshot, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity < 0 {
		quantity = 0
	}

	sess.mu.Lock()
	if sess.state == domain.StateOrderPlaced {
		sess.mu.Unlock()
		return nil, domain.ErrOrderLocked
	}
	sess.cart.SetQuantity(menuID, quantity)
	s.cartMutatedLocked(sess)
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	s.publish(sess.id, snap)
	return &snap, nil
}

// RemoveItem deletes a line from the cart.
func (s *CheckoutService) RemoveItem(ctx context.Context, sessionID uuid.UUID, menuID string) (*ports.StateSnapshot, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state == domain.StateOrderPlaced {
		sess.mu.Unlock()
		return nil, domain.ErrOrderLocked
	}
	sess.cart.RemoveLine(menuID)
	s.cartMutatedLocked(sess)
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	s.publish(sess.id, snap)
	return &snap, nil
}

// ClearCart empties the cart and drops any pending quote.
func (s *CheckoutService) ClearCart(ctx context.Context, sessionID uuid.UUID) (*ports.StateSnapshot, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state == domain.StateOrderPlaced {
		sess.mu.Unlock()
		return nil, domain.ErrOrderLocked
	}
	sess.cart.Clear()
	s.cartMutatedLocked(sess)
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	s.publish(sess.id, snap)
	return &snap, nil
}

// cartMutatedLocked invalidates the bill and re-arms the debounced quote.
// Caller must hold sess.mu.
func (s *CheckoutService) cartMutatedLocked(sess *session) {
	sess.bill = nil
	sess.quoteErr = ""
	if sess.state == domain.StateQuoted {
		sess.state = domain.StateBuilding
	}

	if sess.cart.IsEmpty() {
		sess.quotePending = false
		s.quotes.cancel(sess.id)
		return
	}

	sess.quotePending = true
	if s.quotes.schedule(sess.id, func() { s.runQuote(sess) }) {
		metrics.QuotesCoalescedTotal.Inc()
	}
}

// runQuote fires when the debounce window closes: it snapshots the cart,
// asks the backend for a bill, and applies the result only if the cart has
// not moved since. A result for an older cart revision is discarded.
func (s *CheckoutService) runQuote(sess *session) {
	sess.mu.Lock()
	if sess.state == domain.StateOrderPlaced || sess.cart.IsEmpty() {
		sess.quotePending = false
		sess.mu.Unlock()
		return
	}
	if sess.quoteInFlight {
		// Let the active flight finish; its completion reschedules when the
		// result turns out stale.
		sess.mu.Unlock()
		return
	}
	sess.quoteInFlight = true
	rev := sess.cart.Revision
	lines := sess.cart.OrderLines()
	token := sess.identity.Token
	storeID := sess.storeID
	sess.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
	bill, err := s.gateway.CalculateBill(ctx, token, storeID, lines)
	cancel()

	sess.mu.Lock()
	sess.quoteInFlight = false

	if err != nil {
		metrics.BillQuotesTotal.WithLabelValues("error").Inc()
		if rev != sess.cart.Revision {
			// The failure belongs to lines that no longer exist. A newer
			// mutation may have early-returned on quoteInFlight, so requote
			// here rather than leaving the cart unquoted.
			if sess.quotePending && !sess.cart.IsEmpty() && sess.state != domain.StateOrderPlaced {
				s.quotes.schedule(sess.id, func() { s.runQuote(sess) })
			}
			sess.mu.Unlock()
			return
		}
		sess.quotePending = false
		sess.quoteErr = err.Error()
		snap := sess.snapshotLocked()
		sess.mu.Unlock()
		s.logger.Error().Err(err).Str("session_id", sess.id.String()).Msg("bill calculation failed")
		s.publish(sess.id, snap)
		return
	}

	if rev != sess.cart.Revision {
		// Cart moved while the quote was in flight. Drop the result and
		// requote against the current lines.
		metrics.BillQuotesTotal.WithLabelValues("stale").Inc()
		if sess.quotePending && !sess.cart.IsEmpty() && sess.state != domain.StateOrderPlaced {
			s.quotes.schedule(sess.id, func() { s.runQuote(sess) })
		}
		sess.mu.Unlock()
		return
	}

	metrics.BillQuotesTotal.WithLabelValues("ok").Inc()
	sess.bill = bill
	sess.billRevision = rev
	sess.quotePending = false
	sess.quoteErr = ""
	if sess.state == domain.StateBuilding {
		sess.state = domain.StateQuoted
	}
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	s.publish(sess.id, snap)
}

// PlaceOrder validates the checkout preconditions locally and, only when
// they all hold, creates the order on the backend. Success freezes the cart.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID uuid.UUID, input ports.PlaceOrderInput) (*ports.StateSnapshot, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state == domain.StateOrderPlaced {
		sess.mu.Unlock()
		return nil, domain.ErrOrderLocked
	}
	if sess.placeInFlight {
		sess.mu.Unlock()
		return nil, domain.ErrRequestInFlight
	}
	if sess.cart.IsEmpty() {
		sess.mu.Unlock()
		return nil, domain.ErrEmptyCart
	}
	if sess.storeID == "" {
		sess.mu.Unlock()
		return nil, domain.ErrNoStoreSelected
	}

	mode, err := domain.ParseFulfillmentMode(input.Mode)
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	table := strings.TrimSpace(input.TableNumber)
	name := strings.TrimSpace(input.CustomerName)
	switch mode {
	case domain.ModeDineIn:
		if table == "" {
			sess.mu.Unlock()
			return nil, domain.ErrTableNumberRequired
		}
	case domain.ModeTakeaway:
		if name == "" {
			sess.mu.Unlock()
			return nil, domain.ErrCustomerNameRequired
		}
	}

	sess.placeInFlight = true
	in := ports.CreateOrderInput{
		StoreID:      sess.storeID,
		CashierID:    sess.identity.UserID,
		Mode:         mode,
		TableNumber:  table,
		CustomerName: name,
		Lines:        sess.cart.OrderLines(),
	}
	token := sess.identity.Token
	sess.mu.Unlock()

	order, err := s.gateway.CreateOrder(ctx, token, in)

	sess.mu.Lock()
	sess.placeInFlight = false
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}

	// Cart is now fixed; any pending quote is obsolete — the created
	// order's total is authoritative from here on.
	s.quotes.cancel(sess.id)
	sess.quotePending = false
	sess.state = domain.StateOrderPlaced
	sess.orderCode = order.Code
	sess.orderTotal = order.TotalAmount
	if sess.orderTotal.IsZero() && sess.bill != nil {
		sess.orderTotal = sess.bill.GrandTotal
	}
	sess.mode = mode
	sess.tableNumber = table
	sess.customerName = name
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	metrics.OrdersCreatedTotal.WithLabelValues(string(mode)).Inc()
	s.logger.Info().
		Str("session_id", sess.id.String()).
		Str("order_code", order.Code).
		Str("mode", string(mode)).
		Msg("order created")

	s.publish(sess.id, snap)
	return &snap, nil
}

// ConfirmPayment settles the placed order. For cash the tendered amount must
// cover the total; the check happens before any backend call. Settlement is
// terminal: the whole attempt resets back to BUILDING.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, sessionID uuid.UUID, input ports.ConfirmPaymentInput) (*ports.PaymentOutcome, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state != domain.StateOrderPlaced || sess.orderCode == "" {
		sess.mu.Unlock()
		return nil, domain.ErrNoActiveOrder
	}
	if sess.payInFlight {
		sess.mu.Unlock()
		return nil, domain.ErrRequestInFlight
	}

	method, err := domain.ParsePaymentMethod(input.Method)
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}

	change := decimal.Zero
	if method == domain.PaymentCash {
		if input.Tendered.LessThan(sess.orderTotal) {
			sess.mu.Unlock()
			return nil, domain.ErrInsufficientCash
		}
		change = input.Tendered.Sub(sess.orderTotal)
	}

	sess.payInFlight = true
	token := sess.identity.Token
	code := sess.orderCode
	sess.mu.Unlock()

	result, err := s.gateway.ConfirmPayment(ctx, token, code, method)

	sess.mu.Lock()
	sess.payInFlight = false
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	sess.resetLocked()
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	metrics.PaymentsConfirmedTotal.WithLabelValues(string(method)).Inc()
	s.logger.Info().
		Str("session_id", sess.id.String()).
		Str("order_code", code).
		Str("method", string(method)).
		Str("status", result.Status).
		Str("change", change.String()).
		Msg("payment confirmed")

	s.publish(sess.id, snap)
	return &ports.PaymentOutcome{OrderCode: code, Method: method, Change: change, Snapshot: snap}, nil
}

// CancelPayment abandons the placed order on this side only and unfreezes
// the cart with the prior bill retained. The backend keeps the unconfirmed
// order; no void call exists in the contract.
func (s *CheckoutService) CancelPayment(ctx context.Context, sessionID uuid.UUID) (*ports.StateSnapshot, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state != domain.StateOrderPlaced {
		sess.mu.Unlock()
		return nil, domain.ErrNoActiveOrder
	}

	next := domain.StateBuilding
	if sess.bill != nil {
		next = domain.StateQuoted
	}
	if !sess.state.CanTransitionTo(next) {
		sess.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	}

	code := sess.orderCode
	sess.orderCode = ""
	sess.orderTotal = decimal.Zero
	sess.mode = ""
	sess.tableNumber = ""
	sess.customerName = ""
	sess.state = next
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	s.logger.Warn().
		Str("session_id", sess.id.String()).
		Str("order_code", code).
		Msg("payment cancelled, order left unconfirmed on backend")

	s.publish(sess.id, snap)
	return &snap, nil
}

// Teardown drops the session's scheduled quote, if any. Invoked on logout
// so a timer armed just before the session closed cannot fire and call the
// backend with the dead session's token.
func (s *CheckoutService) Teardown(sessionID uuid.UUID) {
	s.quotes.cancel(sessionID)
}

// State returns the current snapshot without mutating anything.
func (s *CheckoutService) State(ctx context.Context, sessionID uuid.UUID) (*ports.StateSnapshot, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	snap := sess.snapshotLocked()
	sess.mu.Unlock()
	return &snap, nil
}

func (s *CheckoutService) publish(id uuid.UUID, snap ports.StateSnapshot) {
	if s.notifier != nil {
		s.notifier.Publish(id, snap)
	}
}
