package httpapi

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/storefront"
)

// money renders an amount as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type productView struct {
	ID              string            `json:"id"`
	Article         string            `json:"article"`
	Name            string            `json:"name"`
	Category        string            `json:"category"`
	Price           json.Number       `json:"price"`
	Unit            string            `json:"unit"`
	Stock           int               `json:"stock"`
	Image           string            `json:"image,omitempty"`
	Characteristics map[string]string `json:"characteristics"`
}

func newProductView(p catalog.Product) productView {
	chars := p.Characteristics
	if chars == nil {
		chars = map[string]string{}
	}
	return productView{
		ID:              p.ID,
		Article:         p.Article,
		Name:            p.Name,
		Category:        p.Category,
		Price:           money(p.Price),
		Unit:            p.Unit,
		Stock:           p.Stock,
		Image:           p.Image,
		Characteristics: chars,
	}
}

func newProductViews(products []catalog.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, newProductView(p))
	}
	return out
}

type itemView struct {
	productView
	Quantity  int         `json:"quantity"`
	LineTotal json.Number `json:"lineTotal"`
}

func newItemViews(items []cart.Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{
			productView: newProductView(it.Product),
			Quantity:    it.Quantity,
			LineTotal:   money(it.LineTotal()),
		})
	}
	return out
}

type cartView struct {
	SessionID string      `json:"sessionId"`
	Items     []itemView  `json:"items"`
	Positions int         `json:"positions"`
	Total     json.Number `json:"total"`
}

func newCartView(v storefront.CartView) cartView {
	return cartView{
		SessionID: v.SessionID,
		Items:     newItemViews(v.Items),
		Positions: v.Positions(),
		Total:     money(v.Total),
	}
}

type orderView struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Items       []itemView  `json:"items"`
	Total       json.Number `json:"total"`
	Status      string      `json:"status"`
	StatusLabel string      `json:"statusLabel"`
}

func newOrderView(o order.Order) orderView {
	return orderView{
		ID:          o.ID,
		Date:        o.Date,
		Items:       newItemViews(o.Items),
		Total:       money(o.Total),
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
	}
}
