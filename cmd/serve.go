package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"formfiller/handlers"
	"formfiller/middleware"
	"formfiller/services"
	"formfiller/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := a.cfg

			driver, err := newDriver(ctx, cfg, a.logger)
			if err != nil {
				return err
			}

			var tokens middleware.TokenValidator
			if cfg.JWTSecret != "" {
				tokens = services.NewJWTService(cfg.JWTSecret)
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           handlers.NewRouter(cfg, driver, tokens, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("Server listening", zap.String("addr", srv.Addr), zap.Bool("auth", tokens != nil))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			utils.LogInfo("Shutting down server", zap.String("addr", srv.Addr))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		},
	}

	serveCmd.Flags().String("port", "", "port to listen on (default 5002)")
	return serveCmd
}
