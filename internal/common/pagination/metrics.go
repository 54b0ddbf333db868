package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts the total number of pagination requests.
	// Labels: status (HTTP status code), mode (offset, seek_after, seek_before, first_page)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_pagination_requests_total",
			Help: "Total number of pagination requests",
		},
		[]string{"status", "mode"},
	)

	// DurationSeconds tracks request duration distribution.
	// Labels: operation (handler, service, repository)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_pagination_duration_seconds",
			Help:    "Request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: type (validation, cursor, database)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a pagination request metric.
func RecordRequest(statusCode int, mode Mode) {
	RequestsTotal.WithLabelValues(
		fmt.Sprintf("%d", statusCode),
		modeLabel(mode),
	).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordError records an error metric.
// errorType should be one of: "validation", "cursor", "database"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func modeLabel(mode Mode) string {
	switch mode {
	case ModeOffset:
		return "offset"
	case ModeSeekAfter:
		return "seek_after"
	case ModeSeekBefore:
		return "seek_before"
	default:
		return "first_page"
	}
}
