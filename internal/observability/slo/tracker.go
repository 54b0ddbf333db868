package slo

import (
	"math"
	"sort"
	"sync"
)

// maxSamples bounds the per-window latency reservoir.
const maxSamples = 4096

// Tracker accumulates request outcomes over a flush window and publishes
// the derived SLO gauges. Observe is called from the HTTP metrics
// middleware; Flush runs on a schedule (typically once a minute).
type Tracker struct {
	mu       sync.Mutex
	total    int64
	errors   int64
	latency  []float64
	overflow int64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{latency: make([]float64, 0, 256)}
}

// Observe records one completed request.
func (t *Tracker) Observe(statusCode int, durationSeconds float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	if statusCode >= 500 {
		t.errors++
	}
	if len(t.latency) < maxSamples {
		t.latency = append(t.latency, durationSeconds)
	} else {
		t.overflow++
	}
}

// Flush publishes the window's availability, error rate and latency
// percentiles to the SLO gauges and resets the window. A window with no
// traffic leaves the gauges untouched.
func (t *Tracker) Flush() {
	t.mu.Lock()
	total := t.total
	errors := t.errors
	latency := t.latency
	t.total = 0
	t.errors = 0
	t.latency = make([]float64, 0, 256)
	t.overflow = 0
	t.mu.Unlock()

	if total == 0 {
		return
	}

	UpdateAvailability(float64(total-errors) / float64(total))
	UpdateErrorRate(float64(errors) / float64(total))

	if len(latency) > 0 {
		sort.Float64s(latency)
		UpdateLatencyP95(percentile(latency, 0.95))
		UpdateLatencyP99(percentile(latency, 0.99))
	}
}

// percentile returns the p-th percentile of a sorted sample set.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
