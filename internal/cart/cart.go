// Package cart holds the shopping cart of a single session and the rules for
// changing it.
//
// A Cart holds at most one Item per product id and never holds an Item whose
// quantity is zero or negative: any change that would leave a non-positive
// quantity removes the item instead. The total is recomputed from the items on
// every read.
//
// A Cart is not safe for concurrent use; its owner serializes access.
package cart

import (
	"math"
	"slices"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/shopspring/decimal"
)

// DefaultQuantity is the amount added when the caller does not name one.
const DefaultQuantity = 1

type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity.
func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{items: []Item{}}
}

// Add merges quantity into the item for p, appending a new item when p is not
// in the cart yet. Existing items keep their position. A merge that leaves a
// non-positive quantity removes the item, and a non-positive amount for a
// product not in the cart changes nothing. A positive merge saturates at
// math.MaxInt.
func (c *Cart) Add(p catalog.Product, quantity int) []Item {
	if i := c.index(p.ID); i >= 0 {
		c.setQuantity(i, addQuantity(c.items[i].Quantity, quantity))
		return c.Items()
	}
	if quantity > 0 {
		c.items = append(c.items, Item{Product: p, Quantity: quantity})
	}
	return c.Items()
}

// Remove drops the item for productID. Unknown ids are ignored.
func (c *Cart) Remove(productID string) []Item {
	if i := c.index(productID); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
	return c.Items()
}

// UpdateQuantity replaces the quantity of the item for productID. A quantity
// of zero or less removes the item. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) []Item {
	if i := c.index(productID); i >= 0 {
		c.setQuantity(i, quantity)
	}
	return c.Items()
}

// Items returns a copy of the items in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the item for productID, if present.
func (c *Cart) Item(productID string) (Item, bool) {
	if i := c.index(productID); i >= 0 {
		return c.items[i], true
	}
	return Item{}, false
}

// Len is the number of distinct positions in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Total() decimal.Decimal {
	return Total(c.items)
}

// Total sums price times quantity over items.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

func addQuantity(have, quantity int) int {
	if quantity > 0 && have > math.MaxInt-quantity {
		return math.MaxInt
	}
	return have + quantity
}

func (c *Cart) setQuantity(i, quantity int) {
	if quantity <= 0 {
		c.items = slices.Delete(c.items, i, i+1)
		return
	}
	c.items[i].Quantity = quantity
}

func (c *Cart) index(productID string) int {
	for i := range c.items {
		if c.items[i].ID == productID {
			return i
		}
	}
	return -1
}
