package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Match store metrics
	storeOperationsTotal   *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec
	matchesTotal           prometheus.Gauge
	storedBytes            prometheus.Gauge

	// Replay metrics
	decodesTotal *prometheus.CounterVec
	uploadBytes  prometheus.Histogram

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		// HTTP request metrics
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riftvault_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riftvault_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "riftvault_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		// Match store metrics
		storeOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riftvault_store_operations_total",
				Help: "Total number of match store operations",
			},
			[]string{"operation", "status"},
		),

		storeOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riftvault_store_operation_duration_seconds",
				Help:    "Match store operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		matchesTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "riftvault_matches_total",
				Help: "Number of stored matches",
			},
		),

		storedBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "riftvault_stored_bytes",
				Help: "Compressed size of stored replay files in bytes",
			},
		),

		// Replay metrics
		decodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riftvault_replay_decodes_total",
				Help: "Replay decodes by container version and outcome",
			},
			[]string{"version", "outcome"},
		),

		uploadBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "riftvault_upload_bytes",
				Help:    "Size of uploaded replay files in bytes",
				Buckets: prometheus.ExponentialBuckets(64*1024, 2, 12),
			},
		),

		// Health check metrics
		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riftvault_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStoreOperation records a match store operation
func (m *Metrics) RecordStoreOperation(operation string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.storeOperationsTotal.WithLabelValues(operation, status).Inc()
	m.storeOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateStoreStats updates match store statistics
func (m *Metrics) UpdateStoreStats(matches int, storedBytes int64) {
	m.matchesTotal.Set(float64(matches))
	m.storedBytes.Set(float64(storedBytes))
}

// ObserveDecode records a replay decode. outcome is "ok" or an error kind.
func (m *Metrics) ObserveDecode(version, outcome string) {
	m.decodesTotal.WithLabelValues(version, outcome).Inc()
}

// ObserveUpload records the size of an accepted upload
func (m *Metrics) ObserveUpload(size int) {
	m.uploadBytes.Observe(float64(size))
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Record request in flight
		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		// Create response writer wrapper to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		duration := time.Since(start)
		m.RecordHTTPRequest(method, endpoint, rw.statusCode, duration)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
