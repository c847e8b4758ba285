// Package domain holds the per-session shopping cart.
package domain

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// ProductSnapshot is the product as it looked when it was added to the cart.
type ProductSnapshot struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	PurchasePrice *money.Money `json:"purchasePrice"`
	SalePrice     *money.Money `json:"salePrice"`
	Stock         int64        `json:"stock"`
	Image         string       `json:"image,omitempty"`
}

// Item is one cart entry. Quantity is at least 1 while the item is present.
type Item struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int64           `json:"quantity"`
}

// Subtotal returns salePrice * quantity.
func (i Item) Subtotal() *money.Money {
	return i.Product.SalePrice.MultiplyInt(i.Quantity)
}

// Cart aggregates selected products for one user. The total is always computed.
type Cart struct {
	userID    string
	items     []Item
	updatedAt time.Time
}

// New returns an empty cart.
func New(userID string) *Cart {
	return &Cart{userID: userID}
}

// Add puts qty units of a product in the cart, merging with an existing entry.
func (c *Cart) Add(p ProductSnapshot, qty int64, now time.Time) error {
	if qty < 1 || qty > validation.MaxQuantity {
		return validation.Single("quantity", "must be between 1 and %d", validation.MaxQuantity)
	}
	if i := c.indexOf(p.ID); i >= 0 {
		if c.items[i].Quantity > validation.MaxQuantity-qty {
			return validation.Single("quantity", "cart would hold more than %d of product %s", validation.MaxQuantity, p.ID)
		}
		c.items[i].Quantity += qty
	} else {
		c.items = append(c.items, Item{Product: p, Quantity: qty})
	}
	c.updatedAt = now
	return nil
}

// SetQuantity overwrites an entry's quantity; qty <= 0 removes it. Unknown products are ignored.
func (c *Cart) SetQuantity(productID string, qty int64, now time.Time) error {
	if qty > validation.MaxQuantity {
		return validation.Single("quantity", "must be at most %d", validation.MaxQuantity)
	}
	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		c.removeAt(i)
	} else {
		c.items[i].Quantity = qty
	}
	c.updatedAt = now
	return nil
}

// Remove drops an entry if present.
func (c *Cart) Remove(productID string, now time.Time) {
	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
		c.updatedAt = now
	}
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) {
	c.items = nil
	c.updatedAt = now
}

func (c *Cart) UserID() string       { return c.userID }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }
func (c *Cart) IsEmpty() bool        { return len(c.items) == 0 }

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Total is the sum of salePrice * quantity over all entries.
func (c *Cart) Total() *money.Money {
	total := money.Zero()
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Count is the number of units in the cart.
func (c *Cart) Count() int64 {
	var n int64
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Snapshot is the stored form of a cart.
type Snapshot struct {
	UserID    string    `json:"userId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot returns the cart for storage.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{UserID: c.userID, Items: c.Items(), UpdatedAt: c.updatedAt}
}

// Reconstruct rebuilds a cart from storage, dropping entries with a non-positive quantity.
func Reconstruct(s Snapshot) *Cart {
	c := &Cart{userID: s.UserID, updatedAt: s.UpdatedAt}
	for _, it := range s.Items {
		if it.Quantity > 0 {
			c.items = append(c.items, it)
		}
	}
	return c
}

func (c *Cart) indexOf(productID string) int {
	for i, it := range c.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}
