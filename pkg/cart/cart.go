package cart

import "github.com/souqna/souqna/pkg/catalog"

// Line is one cart row: a product snapshot frozen at add-time plus a
// quantity of at least 1. The snapshot keeps its price even if the source
// product is later changed or deleted in the catalog.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price x quantity for this line.
func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart aggregates the session's cart lines. At most one line exists per
// product id.
type Cart struct {
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges the product into the cart: an existing line for the same
// product id gains one unit, otherwise a new line with quantity 1 is
// created from the current product snapshot. Each call increments.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
}

// Remove drops the line for the given product id unconditionally.
func (c *Cart) Remove(id string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// AdjustQuantity applies a signed delta to the line's quantity, clamped at
// a minimum of 1. Going to zero requires Remove. Unknown ids are ignored.
func (c *Cart) AdjustQuantity(id string, delta int) {
	for i := range c.lines {
		if c.lines[i].Product.ID == id {
			q := c.lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.lines[i].Quantity = q
			return
		}
	}
}

// Total returns the sum of price x quantity over all lines, recomputed
// fresh on every call.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Count returns the sum of quantities across lines. This feeds the cart
// badge and is distinct from the number of lines.
func (c *Cart) Count() int {
	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Lines returns a snapshot copy of the cart rows.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}
