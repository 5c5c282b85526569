package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const (
	listOrdersSQL = `SELECT o.id, o.order_date::text, o.total::text, o.status FROM orders o ORDER BY o.position`

	// line items carry the price recorded with the order, not the current one
	listOrderItemsSQL = `SELECT oi.order_id, p.id, p.article, p.name, p.category, oi.price::text, p.unit, p.stock, COALESCE(p.image, ''), p.characteristics::text, oi.quantity
FROM order_items oi
JOIN products p ON p.id = oi.product_id
ORDER BY oi.order_id, oi.position`
)

// ListOrders loads every order with its line items using two queries.
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := r.listOrders(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(orders))
	for i := range orders {
		index[orders[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, listOrderItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID  string
			row      catalog.ProductRow
			quantity int
		)
		dest := append([]any{&orderID}, row.Dest()...)
		dest = append(dest, &quantity)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}

		p, err := row.Product()
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", orderID, err)
		}
		i, ok := index[orderID]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, cart.Item{Product: p, Quantity: quantity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return orders, nil
}

func (r *PostgresRepository) listOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var (
			o             Order
			total, status string
		)
		if err := rows.Scan(&o.ID, &o.Date, &total, &status); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if o.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("order %s: parse total %q: %w", o.ID, total, err)
		}
		if o.Status, err = ParseStatus(status); err != nil {
			return nil, fmt.Errorf("order %s: %w", o.ID, err)
		}
		o.Items = []cart.Item{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return orders, nil
}
