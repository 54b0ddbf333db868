package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for authentication and authorization.
var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_auth_requests_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"role", "result"},
	)

	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_auth_duration_seconds",
			Help:    "Authentication duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"role"},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "backoffice_authz_check_duration_seconds",
			Help:    "Authorization check duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		},
	)

	forbiddenAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_auth_forbidden_total",
			Help: "Requests denied by role permissions",
		},
		[]string{"role", "method"},
	)
)

// RecordAuthRequest records an authentication attempt and its result.
func RecordAuthRequest(role, result string) {
	authRequestsTotal.WithLabelValues(role, result).Inc()
}

// RecordAuthDuration records how long an authentication attempt took.
func RecordAuthDuration(role string, durationSeconds float64) {
	authDuration.WithLabelValues(role).Observe(durationSeconds)
}

// RecordAuthzCheckDuration records how long a token/permission check took.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordForbiddenAttempt records a request denied by the permission table.
func RecordForbiddenAttempt(role, method string) {
	forbiddenAttemptsTotal.WithLabelValues(role, method).Inc()
}
