package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/marmos91/bridgefs/internal/logger"
	"github.com/marmos91/bridgefs/pkg/api/handlers"
	"github.com/marmos91/bridgefs/pkg/api/middleware"
	"github.com/marmos91/bridgefs/pkg/metrics"
	metricsprom "github.com/marmos91/bridgefs/pkg/metrics/prometheus"
	"github.com/marmos91/bridgefs/pkg/provider"
)

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// Routes:
//   - POST /v1/fs/{stat,readdir,mkdir,read,write,delete,rename,copy}
//   - GET  /v1/fs/schemes
//   - GET  /health
//   - GET  /metrics (when a registry is provided)
func NewRouter(config APIConfig, mounts *provider.Mounts, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	var opMetrics metrics.OperationMetrics
	if registry != nil {
		opMetrics = metricsprom.NewOperationMetrics(registry)
		r.Get("/metrics", metricsprom.Handler(registry).ServeHTTP)
	}

	fsHandler := handlers.NewFSHandler(mounts, opMetrics, int64(config.MaxWriteSize.Uint64()))
	healthHandler := handlers.NewHealthHandler(mounts)

	r.Get("/health", healthHandler.Liveness)

	r.Route("/v1/fs", func(r chi.Router) {
		if config.AuthToken != "" {
			r.Use(middleware.BearerAuth(config.AuthToken))
		}

		r.Get("/schemes", fsHandler.Schemes)
		r.Post("/stat", fsHandler.Stat)
		r.Post("/readdir", fsHandler.ReadDirectory)
		r.Post("/mkdir", fsHandler.CreateDirectory)
		r.Post("/read", fsHandler.ReadFile)
		r.Post("/write", fsHandler.WriteFile)
		r.Post("/delete", fsHandler.Delete)
		r.Post("/rename", fsHandler.Rename)
		r.Post("/copy", fsHandler.Copy)
	})

	return r
}

// requestLogger logs requests through the internal logger: start at DEBUG,
// completion at INFO with status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimiddleware.GetReqID(r.Context())

		logger.Debug("bridge request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Info("bridge request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}
