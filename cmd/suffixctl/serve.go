package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/suffixctl/internal/attribution"
	"github.com/danmuck/suffixctl/internal/config"
	"github.com/danmuck/suffixctl/internal/observability"
	"github.com/danmuck/suffixctl/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the attribution HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.InitLogger("suffixctl")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Info().Str("path", configPath).Str("addr", cfg.Addr).Msg("loaded config")

			a, err := attribution.New(attribution.Options{
				Code:     cfg.BuilderCode,
				Contract: cfg.Contract(),
				Policy:   cfg.Policy(),
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			srv := server.New(cfg, a, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.toml (defaults plus env when empty)")
	return cmd
}
