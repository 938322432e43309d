package domain

import (
	"fmt"
	"strings"
	"time"
)

// CartItem is a single product entry in a cart. ProductID is the unique
// key within a cart; an item with quantity 0 is absent, never stored.
type CartItem struct {
	ProductID  string            `json:"productId"`
	Name       string            `json:"name"`
	PriceCents int64             `json:"priceCents"`
	Quantity   int               `json:"quantity"`
	ImageURL   string            `json:"imageUrl,omitempty"`
	Options    map[string]string `json:"options,omitempty"`
}

// Validate checks the fields required to admit an item into a cart.
func (i CartItem) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return fmt.Errorf("%w: productId required", ErrInvalidInput)
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if i.PriceCents < 0 {
		return fmt.Errorf("%w: priceCents must not be negative", ErrInvalidInput)
	}
	if i.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	return nil
}

// Clone returns a deep copy of the item.
func (i CartItem) Clone() CartItem {
	out := i
	if i.Options != nil {
		out.Options = make(map[string]string, len(i.Options))
		for k, v := range i.Options {
			out.Options[k] = v
		}
	}
	return out
}

// CloneItems deep-copies a slice of items, for order snapshots.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.Clone())
	}
	return out
}

// Cart holds an owner's items in insertion order. Insertion order matters
// only for display, never for totals. The same reducer backs both the
// anonymous local store and the server cart service.
type Cart struct {
	OwnerID   string     `json:"ownerId,omitempty"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem appends the item, or increments quantity when the product is
// already present.
func (c *Cart) AddItem(item CartItem) {
	if idx := c.indexOf(item.ProductID); idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item.Clone())
}

// SetQuantity sets the quantity for a product; qty <= 0 removes it.
// Setting an unknown product is a no-op.
func (c *Cart) SetQuantity(productID string, qty int) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	if qty <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return
	}
	c.Items[idx].Quantity = qty
}

// RemoveItem drops the product from the cart if present.
func (c *Cart) RemoveItem(productID string) {
	c.SetQuantity(productID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// SubtotalCents is the sum of unit price times quantity over all items.
func (c *Cart) SubtotalCents() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}
