package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/contracts"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/notify"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/session"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/storefront"
)

type pgSource struct {
	*catalog.PostgresRepository
	orders *order.PostgresRepository
}

func (s pgSource) ListOrders(ctx context.Context) ([]order.Order, error) {
	return s.orders.ListOrders(ctx)
}

func TestStorefrontIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("starts containers")
	}
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgC, dbURL := startPostgres(ctx, t)
	defer terminateContainer(t, pgC)

	rabbitC, rabbitURL := startRabbitMQ(ctx, t)
	defer terminateContainer(t, rabbitC)

	logger := zerolog.Nop()
	require.NoError(t, db.RunMigrations(dbURL, logger))
	// applying twice is a no-op
	require.NoError(t, db.RunMigrations(dbURL, logger))

	pool, err := db.NewPool(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()

	src := pgSource{
		PostgresRepository: catalog.NewPostgresRepository(pool),
		orders:             order.NewPostgresRepository(pool),
	}

	products, err := src.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 6)
	require.Equal(t, "ART-001", products[0].Article)
	require.Equal(t, "12.50", products[0].Price.StringFixed(2))
	require.Equal(t, "Сталь", products[0].Characteristics["Материал"])

	orders, err := src.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		require.Len(t, o.Items, 2)
		require.True(t, o.Total.Equal(o.ItemsTotal()), "order %s", o.ID)
	}

	events := consumeCartEvents(ctx, t, rabbitURL)

	notifier, conn, err := notify.Dial(rabbitURL)
	require.NoError(t, err)
	defer conn.Close()
	defer notifier.Close()

	svc := storefront.NewService(src, session.NewStore(time.Minute, logger), notifier, logger)
	server := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(svc, 5*time.Second), httpapi.RouterOptions{Logger: logger}))
	defer server.Close()

	var created struct {
		SessionID string `json:"sessionId"`
	}
	doJSON(t, http.MethodPost, server.URL+"/api/sessions", nil, http.StatusCreated, &created)
	require.NotEmpty(t, created.SessionID)

	cartURL := fmt.Sprintf("%s/api/sessions/%s/cart", server.URL, created.SessionID)
	doJSON(t, http.MethodPost, cartURL+"/items", map[string]any{"productId": "1", "quantity": 2}, http.StatusOK, nil)

	var cart struct {
		Positions int         `json:"positions"`
		Total     json.Number `json:"total"`
	}
	doJSON(t, http.MethodGet, cartURL, nil, http.StatusOK, &cart)
	require.Equal(t, 1, cart.Positions)
	require.Equal(t, json.Number("25.00"), cart.Total)

	select {
	case env := <-events:
		require.Equal(t, contracts.CartItemAddedEventName, env.EventName)
		require.Equal(t, created.SessionID, env.PartitionKey)
		require.Equal(t, int64(1), env.Sequence)
		require.Equal(t, notify.ItemAddedTitle, env.Payload.Title)
		require.Equal(t, "Болт М8x60 добавлен в корзину", env.Payload.Description)
		require.True(t, env.Payload.CartTotal.Equal(decimal.RequireFromString("25")))
	case <-ctx.Done():
		t.Fatal("timed out waiting for CartItemAdded")
	}
}

func startPostgres(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "storefront"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/storefront?sslmode=disable", host, mappedPort.Port())
	return container, dsn
}

func startRabbitMQ(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.13-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	return container, fmt.Sprintf("amqp://guest:guest@%s:%s/", host, mappedPort.Port())
}

func terminateContainer(t *testing.T, c testcontainers.Container) {
	t.Helper()
	terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Terminate(terminateCtx))
}

// consumeCartEvents binds an exclusive queue to the cart routing key before
// anything is published and decodes every delivery.
func consumeCartEvents(ctx context.Context, t *testing.T, url string) <-chan contracts.EventEnvelope {
	t.Helper()

	conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)

	require.NoError(t, ch.ExchangeDeclare(notify.EventsExchange, "topic", true, false, false, false, nil))
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, notify.CartItemAddedRoutingKey, notify.EventsExchange, false, nil))

	deliveries, err := ch.ConsumeWithContext(ctx, q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	out := make(chan contracts.EventEnvelope, 8)
	go func() {
		defer close(out)
		for d := range deliveries {
			var env contracts.EventEnvelope
			if err := json.Unmarshal(d.Body, &env); err != nil {
				continue
			}
			out <- env
		}
	}()
	return out
}

func doJSON(t *testing.T, method, url string, body any, wantStatus int, out any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}
