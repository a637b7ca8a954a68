package domain

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// State machine
// ---------------------------------------------------------------------------

func TestCheckoutState_ValidTransitions(t *testing.T) {
	cases := []struct {
		from, to CheckoutState
		want     bool
	}{
		{StateBuilding, StateQuoted, true},
		{StateBuilding, StateOrderPlaced, true},
		{StateBuilding, StateSettled, false},
		{StateQuoted, StateBuilding, true},
		{StateQuoted, StateOrderPlaced, true},
		{StateQuoted, StateSettled, false},
		{StateOrderPlaced, StateSettled, true},
		{StateOrderPlaced, StateQuoted, true},   // cancel payment, bill retained
		{StateOrderPlaced, StateBuilding, true}, // cancel payment, no bill
		{StateSettled, StateBuilding, false},    // settled is terminal
		{StateSettled, StateOrderPlaced, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// Enum parsing
// ---------------------------------------------------------------------------

func TestParseFulfillmentMode(t *testing.T) {
	if m, err := ParseFulfillmentMode("DINE_IN"); err != nil || m != ModeDineIn {
		t.Errorf("DINE_IN: got (%v, %v)", m, err)
	}
	if m, err := ParseFulfillmentMode("TAKEAWAY"); err != nil || m != ModeTakeaway {
		t.Errorf("TAKEAWAY: got (%v, %v)", m, err)
	}
	if _, err := ParseFulfillmentMode("DELIVERY"); !errors.Is(err, ErrInvalidFulfillmentMode) {
		t.Errorf("DELIVERY: expected ErrInvalidFulfillmentMode, got %v", err)
	}
	if _, err := ParseFulfillmentMode("dine_in"); err == nil {
		t.Error("mode parsing must be case sensitive")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"CASH", "QRIS", "TRANSFER"} {
		if _, err := ParsePaymentMethod(valid); err != nil {
			t.Errorf("%s: unexpected error %v", valid, err)
		}
	}
	if _, err := ParsePaymentMethod("CARD"); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Errorf("CARD: expected ErrInvalidPaymentMethod, got %v", err)
	}
}
