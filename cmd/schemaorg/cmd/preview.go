package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Togather-Foundation/schemaorg/internal/config"
	"github.com/Togather-Foundation/schemaorg/internal/metrics"
	"github.com/Togather-Foundation/schemaorg/web"
)

var (
	// Preview flags (override config/env)
	previewHost string
	previewPort int
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Serve a live HTML preview of an entity's serializations",
	Long: `Start a local HTTP server that shows an entity's validation result
and its JSON-LD, Microdata, and RDFa serializations side by side.

The server will:
- Load configuration from environment variables
- Serve the preview page with raw serialization endpoints
- Expose Prometheus metrics on /metrics
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Preview an article on the default address
  schemaorg preview article.json

  # Bind to a specific host and port
  schemaorg preview article.json --host 0.0.0.0 --port 9090

  # Preview with debug logging
  schemaorg preview article.json --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewHost, "host", "", "bind address (default: 127.0.0.1)")
	previewCmd.Flags().IntVar(&previewPort, "port", 0, "port (default: 8080)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Override config with flags if provided
	if previewHost != "" {
		cfg.Server.Host = previewHost
	}
	if previewPort != 0 {
		cfg.Server.Port = previewPort
	}

	logger := config.NewLogger(cfg.Logging)

	entities, err := loadEntities(cmd, args[0])
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		return fmt.Errorf("%s: no documents in input", displayName(args[0]))
	}
	if len(entities) > 1 {
		logger.Warn().Int("count", len(entities)).Msg("input holds multiple documents, previewing the first")
	}

	preview, err := web.NewPreview(entities[0], logger)
	if err != nil {
		return err
	}

	metrics.Init(Version, GitCommit, BuildDate)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           preview.Handler(cfg.RateLimit),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).
			Str("url", fmt.Sprintf("http://%s/", server.Addr)).
			Msg("preview listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	return gracefulShutdown(server, logger)
}

func gracefulShutdown(server *http.Server, logger zerolog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
