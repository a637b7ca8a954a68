package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func menu(id string, price int64) MenuItem {
	return MenuItem{ID: id, Name: "item " + id, Price: decimal.NewFromInt(price), Available: true}
}

// subtotalFromLines recomputes the subtotal independently of the cart's own
// bookkeeping, so tests can assert the two never drift apart.
func subtotalFromLines(c *Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

func assertSubtotalConsistent(t *testing.T, c *Cart) {
	t.Helper()
	want := subtotalFromLines(c)
	if !c.Subtotal.Equal(want) {
		t.Errorf("subtotal drifted: cart says %s, lines say %s", c.Subtotal, want)
	}
}

// ---------------------------------------------------------------------------
// AddLine
// ---------------------------------------------------------------------------

func TestCart_AddLine_NewItem(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 15000))

	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", c.Lines[0].Quantity)
	}
	if !c.Subtotal.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("expected subtotal 15000, got %s", c.Subtotal)
	}
}

func TestCart_AddLine_SameItemTwiceMerges(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 15000))
	c.AddLine(menu("m1", 15000))

	if len(c.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", c.Lines[0].Quantity)
	}
	if !c.Subtotal.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("expected subtotal 30000, got %s", c.Subtotal)
	}
}

func TestCart_AddLine_KeepsInsertionOrder(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 100))
	c.AddLine(menu("m2", 200))
	c.AddLine(menu("m1", 100)) // increments m1, m2 stays second

	if c.Lines[0].Menu.ID != "m1" || c.Lines[1].Menu.ID != "m2" {
		t.Errorf("insertion order broken: got [%s, %s]", c.Lines[0].Menu.ID, c.Lines[1].Menu.ID)
	}
}

// ---------------------------------------------------------------------------
// SetQuantity
// ---------------------------------------------------------------------------

func TestCart_SetQuantity(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 5000))
	c.SetQuantity("m1", 4)

	if c.Lines[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", c.Lines[0].Quantity)
	}
	if !c.Subtotal.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("expected subtotal 20000, got %s", c.Subtotal)
	}
}

func TestCart_SetQuantity_ZeroKeepsLine(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 5000))
	c.SetQuantity("m1", 0)

	if len(c.Lines) != 1 {
		t.Fatalf("quantity 0 must keep the line, got %d lines", len(c.Lines))
	}
	if !c.Subtotal.Equal(decimal.Zero) {
		t.Errorf("expected zero subtotal, got %s", c.Subtotal)
	}
}

func TestCart_SetQuantity_AbsentLineIsNoOp(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 5000))
	before := len(c.Lines)

	c.SetQuantity("nope", 3)

	if len(c.Lines) != before {
		t.Errorf("absent line must not be created, got %d lines", len(c.Lines))
	}
	assertSubtotalConsistent(t, c)
}

func TestCart_SetQuantity_AdvancesRevision(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 5000))
	rev := c.Revision

	c.SetQuantity("m1", 2)
	if c.Revision <= rev {
		t.Errorf("revision must advance on mutation: before %d, after %d", rev, c.Revision)
	}
}

// ---------------------------------------------------------------------------
// RemoveLine / Clear
// ---------------------------------------------------------------------------

func TestCart_RemoveLine(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 100))
	c.AddLine(menu("m2", 200))
	c.RemoveLine("m1")

	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line after removal, got %d", len(c.Lines))
	}
	if c.Lines[0].Menu.ID != "m2" {
		t.Errorf("wrong line removed, remaining: %s", c.Lines[0].Menu.ID)
	}
	assertSubtotalConsistent(t, c)
}

func TestCart_Clear(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 100))
	c.AddLine(menu("m2", 200))
	c.Clear()

	if !c.IsEmpty() {
		t.Error("cart must be empty after Clear")
	}
	if !c.Subtotal.Equal(decimal.Zero) {
		t.Errorf("expected zero subtotal, got %s", c.Subtotal)
	}
}

// ---------------------------------------------------------------------------
// Subtotal invariance under arbitrary mutation sequences
// ---------------------------------------------------------------------------

func TestCart_SubtotalAlwaysDerivableFromLines(t *testing.T) {
	c := NewCart()
	ops := []func(){
		func() { c.AddLine(menu("a", 2500)) },
		func() { c.AddLine(menu("b", 12000)) },
		func() { c.AddLine(menu("a", 2500)) },
		func() { c.SetQuantity("b", 5) },
		func() { c.SetQuantity("a", 0) },
		func() { c.RemoveLine("b") },
		func() { c.AddLine(menu("c", 999)) },
		func() { c.Clear() },
		func() { c.AddLine(menu("a", 2500)) },
	}
	for i, op := range ops {
		op()
		want := subtotalFromLines(c)
		if !c.Subtotal.Equal(want) {
			t.Fatalf("after op %d: cart subtotal %s, lines sum %s", i, c.Subtotal, want)
		}
	}
}

func TestCart_OrderLines(t *testing.T) {
	c := NewCart()
	c.AddLine(menu("m1", 100))
	c.AddLine(menu("m2", 200))
	c.SetQuantity("m2", 3)

	lines := c.OrderLines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(lines))
	}
	if lines[0].MenuID != "m1" || lines[0].Quantity != 1 {
		t.Errorf("line 0: got %+v", lines[0])
	}
	if lines[1].MenuID != "m2" || lines[1].Quantity != 3 {
		t.Errorf("line 1: got %+v", lines[1])
	}
}
