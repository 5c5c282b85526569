package order

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var (
	orderCols = []string{"id", "order_date", "total", "status"}
	itemCols  = []string{"order_id", "id", "article", "name", "category", "price", "unit", "stock", "image", "characteristics", "quantity"}
)

func TestPostgresRepository_ListOrders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM orders o ORDER BY o.position").WillReturnRows(
		pgxmock.NewRows(orderCols).
			AddRow("ORD-001", "2024-10-20", "1780.00", "completed").
			AddRow("ORD-002", "2024-10-18", "865.00", "completed").
			AddRow("ORD-003", "2024-10-17", "0.00", "cancelled"),
	)
	mock.ExpectQuery("FROM order_items oi").WillReturnRows(
		pgxmock.NewRows(itemCols).
			AddRow("ORD-001", "1", "ART-001", "Болт М8x60", "Крепёж", "12.50", "шт", 1500, "", `{"Материал": "Сталь"}`, 100).
			AddRow("ORD-001", "2", "ART-002", "Гайка М8", "Крепёж", "5.30", "шт", 2000, "", `{}`, 100).
			AddRow("ORD-002", "3", "ART-003", "Шайба 8мм", "Крепёж", "2.10", "шт", 3000, "", `{}`, 200).
			AddRow("ORD-002", "4", "ART-004", "Винт М6x40", "Крепёж", "8.90", "шт", 800, "", `{}`, 50),
	)

	orders, err := NewPostgresRepository(mock).ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	require.Equal(t, "ORD-001", orders[0].ID)
	require.Equal(t, "2024-10-20", orders[0].Date)
	require.Equal(t, StatusCompleted, orders[0].Status)
	require.Len(t, orders[0].Items, 2)
	require.Equal(t, "ART-002", orders[0].Items[1].Article)
	require.Equal(t, 100, orders[0].Items[1].Quantity)
	require.True(t, orders[0].Total.Equal(orders[0].ItemsTotal()))

	require.Len(t, orders[1].Items, 2)
	require.Equal(t, "865", orders[1].ItemsTotal().String())

	require.Equal(t, StatusCancelled, orders[2].Status)
	require.NotNil(t, orders[2].Items)
	require.Empty(t, orders[2].Items)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListOrdersUnknownStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM orders o").WillReturnRows(
		pgxmock.NewRows(orderCols).AddRow("ORD-009", "2024-10-01", "1.00", "shipped"),
	)

	_, err = NewPostgresRepository(mock).ListOrders(context.Background())
	require.ErrorContains(t, err, `unknown order status "shipped"`)
}

func TestPostgresRepository_ListOrdersItemsError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM orders o").WillReturnRows(pgxmock.NewRows(orderCols))
	mock.ExpectQuery("FROM order_items oi").WillReturnError(errors.New("relation does not exist"))

	_, err = NewPostgresRepository(mock).ListOrders(context.Background())
	require.ErrorContains(t, err, "select order_items")
	require.NoError(t, mock.ExpectationsWereMet())
}
