// Package httpd implements the serve command for the email classifier HTTP API.
package httpd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/telemetry"
)

// Command returns the serve command. opts is read when the command runs.
func Command(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the email classifier HTTP API: POST /analyze, GET /api/stats,
GET /health and GET /metrics. Shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Start(cmd.Context(), *opts)
		},
	}
}

// Start serves until ctx is cancelled or a shutdown signal arrives.
func Start(ctx context.Context, opts bootstrap.Options) error {
	cfg, logger, err := bootstrap.Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	comps, err := bootstrap.NewComponents(cfg, logger, telemetry.NewProvider())
	if err != nil {
		return fmt.Errorf("setup classifier: %w", err)
	}
	defer func() {
		if closeErr := comps.Close(); closeErr != nil {
			logger.Error("Failed to release resources", infralogger.Error(closeErr))
		}
	}()

	server := bootstrap.NewServer(comps)
	logger.Info("Starting email classifier",
		infralogger.String("version", cfg.Service.Version),
		infralogger.Int("port", cfg.Service.Port),
		infralogger.Bool("sentiment", comps.Sentiment != nil),
		infralogger.Bool("cache", comps.Redis != nil),
	)

	if err = server.RunWithGracefulShutdown(ctx); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}
