// Package metrics provides Prometheus instrumentation for the dashboard core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pipedash"

var (
	// jobsSubmittedTotal counts job creation attempts by outcome.
	jobsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_submitted_total",
			Help:      "Total number of job creation requests",
		},
		[]string{"status"}, // status: success, error
	)

	// pollCyclesTotal counts progress polling cycles.
	pollCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_cycles_total",
			Help:      "Total number of progress polling cycles",
		},
	)

	// streamFallbacksTotal counts progress-stream failures that fell back to polling.
	streamFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_fallbacks_total",
			Help:      "Total number of progress stream failures that triggered polling fallback",
		},
	)

	// trackersActive gauges currently active job trackers.
	trackersActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trackers_active",
			Help:      "Number of currently active job progress trackers",
		},
	)

	// backendRequestDuration is a histogram of backend API call duration.
	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of backend API calls in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation", "status"},
	)
)

// allMetrics lists every collector for registration.
var allMetrics = []prometheus.Collector{
	jobsSubmittedTotal,
	pollCyclesTotal,
	streamFallbacksTotal,
	trackersActive,
	backendRequestDuration,
}

// Register registers all pipedash metrics with the given registry.
func Register(reg prometheus.Registerer) {
	for _, c := range allMetrics {
		reg.MustRegister(c)
	}
}

// RecordJobSubmitted records a job creation attempt.
func RecordJobSubmitted(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	jobsSubmittedTotal.WithLabelValues(status).Inc()
}

// RecordPollCycle records one progress polling cycle.
func RecordPollCycle() {
	pollCyclesTotal.Inc()
}

// RecordStreamFallback records a stream failure that triggered polling.
func RecordStreamFallback() {
	streamFallbacksTotal.Inc()
}

// TrackerStarted increments the active tracker gauge.
func TrackerStarted() {
	trackersActive.Inc()
}

// TrackerStopped decrements the active tracker gauge.
func TrackerStopped() {
	trackersActive.Dec()
}

// ObserveBackendRequest records the duration of one backend API call.
func ObserveBackendRequest(operation string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	backendRequestDuration.WithLabelValues(operation, status).Observe(seconds)
}
