// Command storefront serves the storefront API and offers a few offline
// commands over the same store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/logging"
	"github.com/mytheresa/storefront/shop"
	"github.com/mytheresa/storefront/storage"
)

type cli struct {
	envFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Suit storefront: catalog, cart, checkout and admin",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			c.cfg, err = config.Load(c.envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			level := c.cfg.LogLevel
			if c.verbose {
				level = "debug"
			}
			c.logger, err = logging.New(level, c.cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "Path to an optional .env file")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		c.serveCmd(),
		c.adviseCmd(),
		c.ordersCmd(),
		c.checkoutCmd(),
	)
	return rootCmd
}

// openStore connects the configured backend and loads the store. A catalog
// that cannot be fetched is logged and tolerated; storage errors are not.
func (c *cli) openStore(ctx context.Context) (*shop.Store, storage.Backend, error) {
	backend, err := storage.Open(ctx, storage.Options{
		Driver:        c.cfg.StorageDriver,
		SQLitePath:    c.cfg.SQLitePath,
		PostgresDSN:   c.cfg.PostgresDSN,
		RedisAddr:     c.cfg.RedisAddr,
		RedisPassword: c.cfg.RedisPassword,
		RedisDB:       c.cfg.RedisDB,
		RedisPrefix:   c.cfg.RedisPrefix,
		Debug:         c.cfg.DBDebug,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	source := shop.NewSource(c.cfg.CatalogSource, &http.Client{Timeout: c.cfg.CatalogTimeout})
	store := shop.New(backend, shop.NewLoader(source, c.cfg.CatalogTimeout), shop.WithLogger(c.logger))

	if err := store.Load(ctx); err != nil {
		var loadErr *shop.LoadError
		if !errors.As(err, &loadErr) {
			_ = backend.Close()
			return nil, nil, err
		}
	}
	return store, backend, nil
}
