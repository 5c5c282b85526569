package order

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

var ErrNotFound = errors.New("order not found")

// DateLayout is the layout of Order.Date.
const DateLayout = "2006-01-02"

type Order struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Items  []cart.Item     `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Status Status          `json:"status"`
}

// ItemsTotal recomputes the total from the line items. Total itself is the
// figure recorded with the order and is not derived.
func (o Order) ItemsTotal() decimal.Decimal {
	return cart.Total(o.Items)
}

func Find(orders []Order, id string) (Order, error) {
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}
