package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventfeed-io/server/internal/api"
	"github.com/eventfeed-io/server/internal/config"
	"github.com/eventfeed-io/server/internal/domain/events"
	"github.com/eventfeed-io/server/internal/metrics"
	"github.com/eventfeed-io/server/internal/storage/objectstore"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the eventfeed HTTP server",
	Long: `Start the eventfeed HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Connect the remote object store client
- Serve /v1/events, /v1/events/{id}, /v1/health and /metrics
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug

  # Start with a config file
  server serve --config /etc/eventfeed/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting eventfeed server")

	metrics.Init(Version, GitCommit, BuildDate)

	store := objectstore.NewClient(
		cfg.Store.BaseURL,
		cfg.Store.Bucket,
		objectstore.WithTimeout(cfg.Store.Timeout),
	)
	service := events.NewService(store, cfg.Store.PublicBaseURL)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(cfg, logger, service, Version, GitCommit),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return runUntilSignal(server, logger)
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}

	// Override logging from flags if provided
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

// runUntilSignal serves until SIGINT/SIGTERM, then drains connections with a
// bounded shutdown timeout.
func runUntilSignal(server *http.Server, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
			return err
		}
		logger.Info().Msg("server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("http server error")
		return err
	}
	return nil
}
