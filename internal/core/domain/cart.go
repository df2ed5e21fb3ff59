package domain

import (
	"github.com/shopspring/decimal"
)

// CartLine is one product entry in a cart. Name, UnitPrice and ImageURL are
// snapshots taken when the product was added; they are not refreshed from the
// catalog afterwards.
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
}

// Cart holds the lines of a single session. At most one line exists per
// product; a line's quantity is always >= 1.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Find returns the index of the line for productID, or -1.
func (c *Cart) Find(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Upsert merges line into the cart: an existing line for the same product has
// its quantity replaced with quantity, a new line is appended with it. A
// quantity <= 0 is rejected by dropping the line instead.
func (c *Cart) Upsert(line CartLine, quantity int) {
	if quantity <= 0 {
		c.Remove(line.ProductID)
		return
	}
	line.Quantity = quantity
	if i := c.Find(line.ProductID); i != -1 {
		c.Lines[i] = line
		return
	}
	c.Lines = append(c.Lines, line)
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID int64) {
	if i := c.Find(productID); i != -1 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Subtotal recomputes the price sum on every call; it is never cached. The
// value receiver keeps it callable on cart copies handed out by services.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// ItemCount is the sum of line quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// ClampQuantity bounds a requested quantity by a known capacity. When the
// capacity is unknown (oracle unreachable) the request is accepted as given.
func ClampQuantity(requested, capacity int, capacityKnown bool) (applied int, limited bool) {
	if !capacityKnown {
		return requested, false
	}
	if requested > capacity {
		return capacity, true
	}
	return requested, false
}
