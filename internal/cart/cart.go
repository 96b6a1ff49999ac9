package cart

import (
	"time"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
)

// Cart is an ordered collection of lines, unique by product id. All
// mutations keep LineTotal eagerly in sync with quantity and unit
// quantity, nothing is recomputed at read time.
//
// Cart does no input validation: callers are expected to reject malformed
// quantities before they get here (the HTTP layer parses and rejects draft
// input, see internal/http). Passing a non-positive quantity to Add is
// unspecified.
type Cart struct {
	SessionID string            `json:"session_id"`
	Lines     []domain.CartLine `json:"lines"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func New(sessionID string) *Cart {
	now := time.Now()
	return &Cart{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// lineTotal prices quantity orders of p. Continuous units multiply in the
// per-order unit quantity, discrete items do not.
func lineTotal(p domain.Product, quantity int, unitQuantity float64) float64 {
	if p.Unit.Continuous() {
		return p.SellingPrice * float64(quantity) * unitQuantity
	}
	return p.SellingPrice * float64(quantity)
}

// Add merges quantity into an existing line for the product or appends a
// new one. On merge the unit quantity is replaced (not summed) by the
// given value and the freshly priced increment is added to the cached
// line total.
func (c *Cart) Add(p domain.Product, quantity int, unitQuantity *float64) {
	uq := 1.0
	if unitQuantity != nil {
		uq = *unitQuantity
	}

	for i := range c.Lines {
		if c.Lines[i].Product.ID != p.ID {
			continue
		}
		c.Lines[i].Quantity += quantity
		c.Lines[i].UnitQuantity = uq
		c.Lines[i].LineTotal += lineTotal(p, quantity, uq)
		c.touch()
		return
	}

	c.Lines = append(c.Lines, domain.CartLine{
		Product:      p,
		Quantity:     quantity,
		UnitQuantity: uq,
		LineTotal:    lineTotal(p, quantity, uq),
		AddedAt:      time.Now(),
	})
	c.touch()
}

// Remove deletes the line for productID. Absent products are a no-op.
func (c *Cart) Remove(productID int64) {
	for i, line := range c.Lines {
		if line.Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.touch()
			return
		}
	}
}

// UpdateQuantity replaces a line's quantity and recomputes its total from
// scratch. A quantity of zero or less removes the line. The unit quantity
// is replaced only when explicitly provided, otherwise the line's current
// value is kept.
func (c *Cart) UpdateQuantity(productID int64, quantity int, unitQuantity *float64) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	for i := range c.Lines {
		if c.Lines[i].Product.ID != productID {
			continue
		}
		if unitQuantity != nil {
			c.Lines[i].UnitQuantity = *unitQuantity
		} else if c.Lines[i].UnitQuantity == 0 {
			c.Lines[i].UnitQuantity = 1
		}
		c.Lines[i].Quantity = quantity
		c.Lines[i].LineTotal = lineTotal(c.Lines[i].Product, quantity, c.Lines[i].UnitQuantity)
		c.touch()
		return
	}
}

// Increment adds one order to an existing line. No-op if the product is
// not in the cart.
func (c *Cart) Increment(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID != productID {
			continue
		}
		c.Lines[i].Quantity++
		c.Lines[i].LineTotal = lineTotal(c.Lines[i].Product, c.Lines[i].Quantity, c.Lines[i].UnitQuantity)
		c.touch()
		return
	}
}

// Decrement removes one order from an existing line. Decrementing a line
// at a single order removes it entirely rather than leaving a
// zero-quantity line. No-op if the product is not in the cart.
func (c *Cart) Decrement(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID != productID {
			continue
		}
		if c.Lines[i].Quantity <= 1 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.touch()
			return
		}
		c.Lines[i].Quantity--
		c.Lines[i].LineTotal = lineTotal(c.Lines[i].Product, c.Lines[i].Quantity, c.Lines[i].UnitQuantity)
		c.touch()
		return
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Lines = nil
	c.touch()
}

// TotalPrice sums the cached line totals.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.LineTotal
	}
	return total
}

// LineTotalPrice returns one line's total, or 0 if the product is absent.
func (c *Cart) LineTotalPrice(productID int64) float64 {
	for _, line := range c.Lines {
		if line.Product.ID == productID {
			return line.LineTotal
		}
	}
	return 0
}

// TotalItems sums order quantities across lines, never weighted by unit
// quantity (two bags of 0.5 kg count as 2).
func (c *Cart) TotalItems() int {
	var total int
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}

// FormatUnitLabel maps a unit kind and quantity to its display label.
// Grams and milliliters are invariant, liters spell out the word.
func FormatUnitLabel(unit domain.UnitKind, quantity int) string {
	switch unit {
	case domain.UnitKilogram:
		if quantity == 1 {
			return "kg"
		}
		return "kgs"
	case domain.UnitGram:
		return "g"
	case domain.UnitMilliliter:
		return "ml"
	case domain.UnitLiter:
		if quantity == 1 {
			return "liter"
		}
		return "liters"
	default:
		if quantity == 1 {
			return "item"
		}
		return "items"
	}
}
