package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/fixtures"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/notify"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/storefront"
)

// postgresSource reads products and orders from the same pool.
type postgresSource struct {
	products *catalog.PostgresRepository
	orders   *order.PostgresRepository
}

func (s postgresSource) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s postgresSource) ListOrders(ctx context.Context) ([]order.Order, error) {
	return s.orders.ListOrders(ctx)
}

// openSource returns the configured product and order source and a func
// that releases it.
func openSource(ctx context.Context, cfg config.Config, logger zerolog.Logger) (storefront.Source, func(), error) {
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				return nil, nil, fmt.Errorf("db migrate: %w", err)
			}
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		logger.Info().Msg("catalog source: postgres")
		return postgresSource{
			products: catalog.NewPostgresRepository(pool),
			orders:   order.NewPostgresRepository(pool),
		}, pool.Close, nil

	case config.SourceFixtures:
		src, err := fixtures.Load(cfg.FixturesFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("file", cfg.FixturesFile).Msg("catalog source: fixtures")
		return src, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
}

// openNotifier returns the configured notification sink and a func that
// closes it.
func openNotifier(cfg config.Config, logger zerolog.Logger) (storefront.Notifier, func(), error) {
	switch cfg.NotifySink {
	case config.SinkRabbitMQ:
		n, conn, err := notify.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("exchange", notify.EventsExchange).Msg("notifications: rabbitmq")
		return n, func() {
			if err := n.Close(); err != nil {
				logger.Warn().Err(err).Msg("close rabbitmq channel")
			}
			if err := conn.Close(); err != nil {
				logger.Warn().Err(err).Msg("close rabbitmq connection")
			}
		}, nil

	case config.SinkLog:
		return notify.NewLogNotifier(logger), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown notify sink %q", cfg.NotifySink)
}
