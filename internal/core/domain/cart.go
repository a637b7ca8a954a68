package domain

import "github.com/shopspring/decimal"

// CartLine pairs a catalog item with a quantity. A cart holds at most one
// line per menu item id.
type CartLine struct {
	Menu     MenuItem
	Quantity int
}

// Total returns price × quantity for this line.
func (l CartLine) Total() decimal.Decimal {
	return l.Menu.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderLine is the minimal item reference sent to the backend for bill
// calculation and order creation.
type OrderLine struct {
	MenuID   string
	Quantity int
}

// Cart is the order being built at the counter. Lines keep insertion order.
// Subtotal is recomputed from the full line set after every mutation, so it
// is always exactly derivable from the lines. Revision advances on every
// mutation and tags bill quotes, so a quote computed for an older cart can
// be recognised and dropped.
type Cart struct {
	Lines    []CartLine
	Subtotal decimal.Decimal
	Revision uint64
}

func NewCart() *Cart {
	return &Cart{Subtotal: decimal.Zero}
}

// AddLine adds one unit of menu: an existing line is incremented in place,
// otherwise a new line is appended at the end.
func (c *Cart) AddLine(menu MenuItem) {
	for i := range c.Lines {
		if c.Lines[i].Menu.ID == menu.ID {
			c.Lines[i].Quantity++
			c.recompute()
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Menu: menu, Quantity: 1})
	c.recompute()
}

// SetQuantity assigns the quantity on the line for menuID. The cart does no
// clamping; callers sanitise the value first. Setting 0 keeps the line —
// removal is only ever explicit. No-op when the line is absent.
func (c *Cart) SetQuantity(menuID string, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].Menu.ID == menuID {
			c.Lines[i].Quantity = quantity
			break
		}
	}
	c.recompute()
}

// RemoveLine deletes the line for menuID, if present.
func (c *Cart) RemoveLine(menuID string) {
	for i := range c.Lines {
		if c.Lines[i].Menu.ID == menuID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			break
		}
	}
	c.recompute()
}

// Clear resets the cart to an empty line set and zero subtotal.
func (c *Cart) Clear() {
	c.Lines = nil
	c.recompute()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// OrderLines projects the cart into the backend item shape.
func (c *Cart) OrderLines() []OrderLine {
	lines := make([]OrderLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, OrderLine{MenuID: l.Menu.ID, Quantity: l.Quantity})
	}
	return lines
}

// recompute folds over all lines. Deliberately O(n) on every mutation: no
// incremental accounting means no possible drift between lines and subtotal.
func (c *Cart) recompute() {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Total())
	}
	c.Subtotal = sum
	c.Revision++
}
