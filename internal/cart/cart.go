package cart

import (
	"math"
	"strconv"
	"strings"
)

// Line is one cart entry, keyed by product id. Name, price and image are a
// snapshot of the product taken when the line was first added.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart holds at most one line per product, in insertion order.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges into an existing line for the same product (quantities sum) or
// appends a new one. The incoming quantity is clamped to a minimum of 1.
func (c *Cart) Add(line Line) {
	line.Quantity = ClampQuantity(line.Quantity)
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// SetQuantity overwrites a line's quantity exactly. A quantity below 1
// removes the line instead.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line if present; otherwise it is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count is the total item quantity across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Total is the exact sum of price times quantity. This value goes on the
// stored order; DisplayTotal is for user-facing output only.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func (c *Cart) DisplayTotal() float64 {
	return math.Round(c.Total()*100) / 100
}

// ClampQuantity floors a quantity at 1.
func ClampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

// ParseQuantity parses direct numeric entry; non-numeric or sub-1 input is
// coerced to 1.
func ParseQuantity(raw string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return ClampQuantity(parsed)
}

// Quantity is an add-to-cart quantity as entered in the selector. Clients
// send it as a JSON number or string; either way invalid or sub-1 input is
// coerced to 1.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	*q = Quantity(ParseQuantity(raw))
	return nil
}
