package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID              string            `json:"id"`
	Article         string            `json:"article"`
	Name            string            `json:"name"`
	Category        string            `json:"category"`
	Price           decimal.Decimal   `json:"price"`
	Unit            string            `json:"unit"`
	Stock           int               `json:"stock"`
	Image           string            `json:"image,omitempty"`
	Characteristics map[string]string `json:"characteristics"`
}

// Find returns the product with the given id.
func Find(products []Product, id string) (Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}
