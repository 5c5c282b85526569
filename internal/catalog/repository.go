package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository reads the catalog from the products table. Rows come
// back in their seeded position so the catalog order matches the fixtures.
type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ProductColumns selects a products row (aliased p) in ProductRow order.
const ProductColumns = `p.id, p.article, p.name, p.category, p.price::text, p.unit, p.stock, COALESCE(p.image, ''), p.characteristics::text`

func (r *PostgresRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ProductColumns+` FROM products p ORDER BY p.position`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var row ProductRow
		if err := rows.Scan(row.Dest()...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p, err := row.Product()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

// ProductRow is the text form of a products row as selected by
// ProductColumns. Price and characteristics travel as text so that scanning
// does not depend on driver support for numeric and jsonb targets.
type ProductRow struct {
	ID              string
	Article         string
	Name            string
	Category        string
	Price           string
	Unit            string
	Stock           int
	Image           string
	Characteristics string
}

func (r *ProductRow) Dest() []any {
	return []any{&r.ID, &r.Article, &r.Name, &r.Category, &r.Price, &r.Unit, &r.Stock, &r.Image, &r.Characteristics}
}

func (r ProductRow) Product() (Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return Product{}, fmt.Errorf("product %s: parse price %q: %w", r.ID, r.Price, err)
	}

	chars := map[string]string{}
	if r.Characteristics != "" {
		if err := json.Unmarshal([]byte(r.Characteristics), &chars); err != nil {
			return Product{}, fmt.Errorf("product %s: parse characteristics: %w", r.ID, err)
		}
	}

	return Product{
		ID:              r.ID,
		Article:         r.Article,
		Name:            r.Name,
		Category:        r.Category,
		Price:           price,
		Unit:            r.Unit,
		Stock:           r.Stock,
		Image:           r.Image,
		Characteristics: chars,
	}, nil
}
