package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marmos91/bridgefs/internal/logger"
	"github.com/marmos91/bridgefs/pkg/provider"
)

// Server is the host-side HTTP endpoint of the bridge. It exposes the file
// operation routes under /v1/fs, the mount listing, health probes and the
// Prometheus scrape endpoint.
//
// The server supports graceful shutdown; the timeout defaults to 5s and
// is overridable via SetShutdownTimeout.
type Server struct {
	server          *http.Server
	mounts          *provider.Mounts
	config          APIConfig
	shutdownTimeout time.Duration
	shutdownOnce    sync.Once
}

// NewServer creates the endpoint server over the given mount table.
//
// The server is created in a stopped state; call Start to begin serving.
// Defaults are applied here so servers constructed directly (e.g. in
// tests) work without going through config loading.
//
// Parameters:
//   - config: server configuration (port, timeouts, auth, write limit)
//   - mounts: the mount table requests are routed through
//   - registry: Prometheus registry for operation metrics (nil disables)
func NewServer(config APIConfig, mounts *provider.Mounts, registry *prometheus.Registry) *Server {
	config.ApplyDefaults()

	router := NewRouter(config, mounts, registry)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		server:          server,
		mounts:          mounts,
		config:          config,
		shutdownTimeout: 5 * time.Second,
	}
}

// SetShutdownTimeout overrides how long Start waits for in-flight requests
// to drain once the context is cancelled. Call before Start.
func (s *Server) SetShutdownTimeout(d time.Duration) {
	if d > 0 {
		s.shutdownTimeout = d
	}
}

// Start starts the endpoint server and blocks until the context is
// cancelled or an error occurs. Cancellation triggers graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("bridge endpoint listening",
			"port", s.config.Port,
			"auth", s.config.AuthToken != "",
			"max_write_size", s.config.MaxWriteSize.String(),
		)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
				// Context was cancelled, error is not needed
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("bridge endpoint shutdown signal received")
		// Fresh context: the cancelled one would abort shutdown instantly.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("bridge endpoint failed: %w", err)
	}
}

// Stop initiates graceful shutdown. Safe to call multiple times and safe
// to call concurrently with Start.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("bridge endpoint shutdown error: %w", err)
			logger.Error("bridge endpoint shutdown error", "error", err)
		} else {
			logger.Info("bridge endpoint stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server is configured to listen on.
func (s *Server) Port() int {
	return s.config.Port
}
