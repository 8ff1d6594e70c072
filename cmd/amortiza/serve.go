package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erickbogarin/amortiza/internal/history"
	"github.com/erickbogarin/amortiza/internal/server"
	"github.com/erickbogarin/amortiza/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.settings.Server.Address = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdown, err := telemetry.InitTracing(ctx, a.settings.Telemetry.ServiceName, version, a.settings.Telemetry.OTLPEndpoint)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					a.logger.Warn("failed to flush traces", zap.Error(err))
				}
			}()

			store, err := history.Open(ctx, a.settings.History)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			handler := server.NewHandler(a.logger, a.newSimulator(false, false), store, server.Options{
				MaxBodyBytes:   a.settings.Server.MaxBodyBytes,
				CORSOrigins:    a.settings.Server.CORSOrigins,
				HistoryBackend: a.settings.History.Backend,
				Version:        version,
			})
			a.logger.Info("starting amortiza API",
				zap.String("version", version),
				zap.String("history", a.settings.History.Backend),
			)
			return server.Serve(ctx, server.NewServer(a.settings.Server, handler), a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.address)")
	return cmd
}
