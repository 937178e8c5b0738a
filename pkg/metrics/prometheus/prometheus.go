// Package prometheus provides the Prometheus implementation of the metrics
// interfaces.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marmos91/bridgefs/pkg/metrics"
)

// operationMetrics is the Prometheus implementation of
// metrics.OperationMetrics.
type operationMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	payloadBytes      *prometheus.HistogramVec
}

// NewOperationMetrics creates Prometheus-backed operation metrics
// registered on reg.
func NewOperationMetrics(reg *prometheus.Registry) metrics.OperationMetrics {
	return &operationMetrics{
		operationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridgefs_fs_operations_total",
				Help: "Total number of bridged file operations by operation, scheme and error code",
			},
			[]string{"operation", "scheme", "error_code"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "bridgefs_fs_operation_duration_milliseconds",
				Help: "Duration of bridged file operations in milliseconds",
				Buckets: []float64{
					1,    // 1ms - in-memory operations
					10,   // 10ms - local disk
					50,   // 50ms
					100,  // 100ms - badger under load
					500,  // 500ms - object storage
					1000, // 1s
					5000, // 5s - large payloads
				},
			},
			[]string{"operation"},
		),
		payloadBytes: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridgefs_fs_payload_bytes",
				Help:    "Content size of read and write operations",
				Buckets: prometheus.ExponentialBuckets(256, 4, 10),
			},
			[]string{"operation", "scheme"},
		),
	}
}

// RecordOperation implements metrics.OperationMetrics.
func (m *operationMetrics) RecordOperation(operation, scheme string, duration time.Duration, errorCode string) {
	m.operationsTotal.WithLabelValues(operation, scheme, errorCode).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(float64(duration.Microseconds()) / 1000.0)
}

// RecordPayloadSize implements metrics.OperationMetrics.
func (m *operationMetrics) RecordPayloadSize(operation, scheme string, bytes int) {
	m.payloadBytes.WithLabelValues(operation, scheme).Observe(float64(bytes))
}

// Handler returns the scrape handler for reg, mounted by the API server at
// /metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
