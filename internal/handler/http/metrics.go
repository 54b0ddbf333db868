package http

import (
	"net/http"
	"strconv"
	"time"

	"spa-backoffice/internal/handler/http/pathutil"
	"spa-backoffice/internal/handler/http/responsewriter"
	"spa-backoffice/internal/observability/slo"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration tracks request latency with optimized buckets for API response times.
	// Buckets capture fast (5-25ms), normal (50-250ms) and slow (500ms-10s) responses,
	// enabling accurate p95 and p99 latency measurements.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// Business metrics
	simulationMode = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backoffice_simulation_mode",
			Help: "Whether simulation database routing is active (1) or not (0)",
		},
	)

	exportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_exports_generated_total",
			Help: "Total number of CSV exports generated",
		},
		[]string{"resource", "status"},
	)

	sessionsPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_sessions_pruned_total",
			Help: "Total number of expired sessions removed by the pruning job",
		},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)

// sloTracker accumulates request outcomes for the periodic SLO flush job.
var sloTracker = slo.NewTracker()

// SLOTracker exposes the shared tracker so the scheduler can flush it.
func SLOTracker() *slo.Tracker {
	return sloTracker
}

// MetricsMiddleware records HTTP request metrics including duration, size, and status codes.
// It uses path normalization to prevent label cardinality explosion from ID-containing paths.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Example: /members/123 -> /members/:id
		normalizedPath := pathutil.NormalizePath(r.URL.Path)

		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(r.ContentLength))
		}

		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start).Seconds()

		sloTracker.Observe(rw.StatusCode(), duration)

		status := strconv.Itoa(rw.StatusCode())
		httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, normalizedPath, status).Observe(duration)
		httpResponseSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(rw.BytesWritten()))
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// SetSimulationMode records the current routing mode.
func SetSimulationMode(active bool) {
	if active {
		simulationMode.Set(1)
	} else {
		simulationMode.Set(0)
	}
}

// RecordExportGenerated records the result of a CSV export.
func RecordExportGenerated(resource string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	exportsGeneratedTotal.WithLabelValues(resource, status).Inc()
}

// RecordSessionsPruned records the number of sessions removed by a pruning run.
func RecordSessionsPruned(count int64) {
	sessionsPrunedTotal.Add(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
