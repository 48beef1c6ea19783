// Package cart implements the session-scoped shopping cart: an ordered list
// of menu items with quantities, mirrored into durable key-value storage
// after every mutation.
//
// Quantity sanitization happens at write time (Add, SetQuantity, hydration):
// a stored line always has quantity >= 1, so readers of the cart never need
// defensive defaults when summing totals.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/feastly/storefront/internal/ordering"
)

// ErrMissingRestaurant rejects a menu item offered to the cart without its
// owning restaurant identifier. Such an item could never be checked out, so
// it is refused at the door rather than at submission time.
var ErrMissingRestaurant = errors.New("cart: menu item has no restaurant id")

// Line is one menu item plus its quantity within the cart.
type Line struct {
	ordering.MenuItem
	Quantity int `json:"quantity"`
}

// EffectiveSubtotal is the line's discounted unit price times its quantity.
func (l Line) EffectiveSubtotal() decimal.Decimal {
	return l.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered collection of lines for one session. The first line's
// restaurant establishes the implicit restaurant for checkout; the cart does
// not enforce single-restaurant membership at the data level.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add appends the item with the given quantity, or increments the existing
// line when the item is already present. Non-positive quantities are
// sanitized to 1, matching the "add one more" intent of a repeated add.
func (c *Cart) Add(item ordering.MenuItem, quantity int) error {
	if item.RestaurantID == 0 {
		return ErrMissingRestaurant
	}
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ID == item.ID {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, Line{MenuItem: item, Quantity: quantity})
	return nil
}

// Remove deletes the line with the given menu item ID; absent IDs are a no-op.
func (c *Cart) Remove(itemID int64) {
	for i := range c.Lines {
		if c.Lines[i].ID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity exactly. A quantity of zero or below
// removes the line entirely — a line never survives with quantity < 1.
func (c *Cart) SetQuantity(itemID int64, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ID == itemID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// TotalPrice sums each line's effective (discounted) price times quantity.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.EffectiveSubtotal())
	}
	return total
}

// TotalItemCount sums line quantities.
func (c *Cart) TotalItemCount() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// RestaurantID returns the implicit restaurant for checkout: the first
// line's owner. Zero on an empty cart.
func (c *Cart) RestaurantID() int64 {
	if len(c.Lines) == 0 {
		return 0
	}
	return c.Lines[0].RestaurantID
}

// sanitize repairs lines hydrated from a persisted mirror where the quantity
// field was null, missing, or negative. Only the bad field is coerced (to 1);
// sibling lines are left untouched. Reports whether anything was repaired.
func (c *Cart) sanitize() bool {
	var repaired bool
	for i := range c.Lines {
		if c.Lines[i].Quantity < 1 {
			c.Lines[i].Quantity = 1
			repaired = true
		}
	}
	return repaired
}
