// Package cli wires the storefront commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logging"
)

// app is the state shared by all commands once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	output  string

	cfg    config.Config
	logger zerolog.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Product catalog and shopping cart service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	pf.StringVarP(&a.output, "output", "o", formatTable, "output format: table or yaml")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error, off)")
	pf.String("log-format", "auto", "log format (json, console, auto)")
	pf.String("source", config.SourceFixtures, "catalog source (fixtures, postgres)")
	pf.String("fixtures-file", "", "fixtures YAML file (default: built-in sample data)")
	pf.String("database-dsn", "", "Postgres DSN")
	a.bind(pf.Lookup("log-level"), config.KeyLogLevel)
	a.bind(pf.Lookup("log-format"), config.KeyLogFormat)
	a.bind(pf.Lookup("source"), config.KeyCatalogSource)
	a.bind(pf.Lookup("fixtures-file"), config.KeyFixturesFile)
	a.bind(pf.Lookup("database-dsn"), config.KeyDatabaseDSN)

	root.AddCommand(
		newServeCommand(a),
		newProductsCommand(a),
		newOrdersCommand(a),
		newRefsCommand(a),
		newMigrateCommand(a),
	)
	return root
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	config.LoadEnvFiles()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if a.output != formatTable && a.output != formatYAML {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	a.cfg = cfg
	a.logger = logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// bind makes the flag override the environment and config file for key,
// but only when it was set on the command line.
func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag.Name, err))
	}
}
