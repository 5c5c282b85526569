package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema and seed data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DatabaseDSN == "" {
				return errors.New("DATABASE_DSN (or --database-dsn) is required")
			}
			return db.RunMigrations(a.cfg.DatabaseDSN, a.logger)
		},
	}
}
