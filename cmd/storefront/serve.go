package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mytheresa/storefront/app/server"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	store, backend, err := c.openStore(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.cfg.HTTPAddr,
		Handler:           server.NewRouter(store, c.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		c.logger.Info("http server listening", zap.String("addr", c.cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		c.cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				c.logger.Info("graceful shutdown initiated")
				if err := srv.Shutdown(ctx); err != nil {
					return err
				}
				return backend.Close()
			},
		},
	)

	select {
	case err := <-serveErr:
		_ = backend.Close()
		return fmt.Errorf("http server failed: %w", err)
	case exitCode := <-wait:
		c.logger.Info("storefront stopped", zap.Int("exit_code", exitCode))
		if exitCode != 0 {
			return fmt.Errorf("shutdown finished with exit code %d", exitCode)
		}
		return nil
	}
}
