package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/marmos91/bridgefs/internal/logger"
	"github.com/marmos91/bridgefs/pkg/api"
	"github.com/marmos91/bridgefs/pkg/config"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the BridgeFS endpoint",
	Long: `Start the BridgeFS host endpoint with the specified configuration.

The endpoint builds the mount table from the configured mounts and serves
file operations over HTTP until interrupted.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/bridgefs/config.yaml.

Examples:
  # Start with default config location
  bridgefs start

  # Start with custom config file
  bridgefs start --config /etc/bridgefs/config.yaml

  # Start with environment variable overrides
  BRIDGEFS_LOGGING_LEVEL=DEBUG bridgefs start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Println("BridgeFS - File system bridge")
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	// Build the mount table from configuration
	mounts, err := config.BuildMounts(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build mounts: %w", err)
	}
	defer func() {
		if err := mounts.Close(); err != nil {
			logger.Error("mount close error", logger.Err(err))
		}
	}()

	logger.Info("Mount table initialized", "mounts", len(mounts.Schemes()))

	// Initialize Prometheus metrics (if enabled)
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		logger.Info("Metrics enabled", "endpoint", "/metrics")
	} else {
		logger.Info("Metrics collection disabled")
	}

	server := api.NewServer(cfg.Server, mounts, registry)
	server.SetShutdownTimeout(cfg.ShutdownTimeout)
	logger.Info("Endpoint configured",
		"port", server.Port(),
		"auth", cfg.Server.AuthToken != "",
		"shutdown_timeout", cfg.ShutdownTimeout.String(),
	)

	// Start server in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start(ctx)
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Endpoint is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Wait for server to shut down gracefully
		if err := <-serverDone; err != nil {
			logger.Error("Endpoint shutdown error", logger.Err(err))
			return err
		}
		logger.Info("Endpoint stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Endpoint error", logger.Err(err))
			return err
		}
		logger.Info("Endpoint stopped")
	}

	return nil
}
