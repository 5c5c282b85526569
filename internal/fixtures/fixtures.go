// Package fixtures serves the sample catalog and order history from YAML.
// The default data set is embedded; a file with the same layout replaces it.
package fixtures

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

type document struct {
	Products []productDoc `yaml:"products"`
	Orders   []orderDoc   `yaml:"orders"`
}

type productDoc struct {
	ID              string            `yaml:"id"`
	Article         string            `yaml:"article"`
	Name            string            `yaml:"name"`
	Category        string            `yaml:"category"`
	Price           any               `yaml:"price"`
	Unit            string            `yaml:"unit"`
	Stock           int               `yaml:"stock"`
	Image           string            `yaml:"image"`
	Characteristics map[string]string `yaml:"characteristics"`
}

type orderDoc struct {
	ID     string         `yaml:"id"`
	Date   string         `yaml:"date"`
	Total  any            `yaml:"total"`
	Status string         `yaml:"status"`
	Items  []orderItemDoc `yaml:"items"`
}

type orderItemDoc struct {
	ProductID string `yaml:"productId"`
	Quantity  int    `yaml:"quantity"`
}

// Source is an in-memory product and order source.
type Source struct {
	products []catalog.Product
	orders   []order.Order
}

// Default returns the embedded sample data set.
func Default() (*Source, error) {
	return Parse(defaultCatalog)
}

// Load reads a fixtures file, or the embedded data set when path is empty.
func Load(path string) (*Source, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	src, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// Parse decodes a fixtures document. Order items reference products by id
// and take a snapshot of the product.
func Parse(data []byte) (*Source, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	src := &Source{
		products: make([]catalog.Product, 0, len(doc.Products)),
		orders:   make([]order.Order, 0, len(doc.Orders)),
	}
	seen := make(map[string]bool, len(doc.Products))
	for _, d := range doc.Products {
		if d.ID == "" {
			return nil, fmt.Errorf("product %q: missing id", d.Article)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("product %s: duplicate id", d.ID)
		}
		seen[d.ID] = true

		price, err := parseDecimal(d.Price)
		if err != nil {
			return nil, fmt.Errorf("product %s: price: %w", d.ID, err)
		}
		chars := d.Characteristics
		if chars == nil {
			chars = map[string]string{}
		}
		src.products = append(src.products, catalog.Product{
			ID:              d.ID,
			Article:         d.Article,
			Name:            d.Name,
			Category:        d.Category,
			Price:           price,
			Unit:            d.Unit,
			Stock:           d.Stock,
			Image:           d.Image,
			Characteristics: chars,
		})
	}

	for _, d := range doc.Orders {
		o, err := src.order(d)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", d.ID, err)
		}
		src.orders = append(src.orders, o)
	}
	return src, nil
}

func (s *Source) order(d orderDoc) (order.Order, error) {
	total, err := parseDecimal(d.Total)
	if err != nil {
		return order.Order{}, fmt.Errorf("total: %w", err)
	}
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]cart.Item, 0, len(d.Items))
	for _, it := range d.Items {
		p, err := catalog.Find(s.products, it.ProductID)
		if err != nil {
			return order.Order{}, fmt.Errorf("item %s: %w", it.ProductID, err)
		}
		if it.Quantity <= 0 {
			return order.Order{}, fmt.Errorf("item %s: quantity must be positive", it.ProductID)
		}
		items = append(items, cart.Item{Product: p, Quantity: it.Quantity})
	}

	return order.Order{ID: d.ID, Date: d.Date, Items: items, Total: total, Status: status}, nil
}

// parseDecimal accepts YAML numbers as well as quoted strings.
func parseDecimal(v any) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, fmt.Errorf("missing value")
	}
	return decimal.NewFromString(fmt.Sprint(v))
}

func (s *Source) ListProducts(context.Context) ([]catalog.Product, error) {
	return slices.Clone(s.products), nil
}

func (s *Source) ListOrders(context.Context) ([]order.Order, error) {
	return slices.Clone(s.orders), nil
}
