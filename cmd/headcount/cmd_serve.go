package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katpally123/attendance-dashboard/pkg/server"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload API",
		Long: `Starts an HTTP server exposing:
  POST /api/process      multipart upload of roster, mytime and vacation files
  GET  /api/shift-codes  corner codes for a date and shift
  GET  /healthz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				appConfig.Server.Port = port
			}

			// The settings document is read once; a load failure is reported on
			// every request instead of refusing to start.
			settings := sync.OnceValues(loadSettings)
			if _, err := settings(); err != nil {
				logger.Warn("settings unavailable", zap.Error(err))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, appConfig, settings, logger)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config)")
	return cmd
}
