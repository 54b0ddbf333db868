package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service level objectives for the back office API. The gauges below
// are compared against these targets in alerting rules.
const (
	// AvailabilitySLO is the target uptime percentage.
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the p95 latency target in seconds.
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the p99 latency target in seconds.
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum acceptable 5xx ratio.
	ErrorRateSLO = 0.001
)

// Gauges published by Tracker.Flush once per window.
var (
	SLOAvailability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Current availability ratio (0-1), target: 0.999",
	})

	SLOLatencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "Current p95 latency in seconds, target: 0.200",
	})

	SLOLatencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "Current p99 latency in seconds, target: 0.500",
	})

	SLOErrorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "Current error rate ratio (0-1), target: 0.001",
	})
)

// UpdateAvailability sets the availability gauge for the current window.
func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

// UpdateLatencyP95 sets the p95 latency gauge in seconds.
func UpdateLatencyP95(seconds float64) {
	SLOLatencyP95.Set(seconds)
}

// UpdateLatencyP99 sets the p99 latency gauge in seconds.
func UpdateLatencyP99(seconds float64) {
	SLOLatencyP99.Set(seconds)
}

// UpdateErrorRate sets the 5xx ratio gauge for the current window.
func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}
