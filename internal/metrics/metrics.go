package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the tracker
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Ingestion Metrics
	PollCycleDuration     prometheus.Histogram
	FlightsProcessedTotal prometheus.Counter
	StatusSnapshotsTotal  prometheus.Counter
	UpstreamErrorsTotal   prometheus.CounterVec

	// Retention Metrics
	CleanupRowsRemovedTotal prometheus.Counter
	CleanupCycleDuration    prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tracker_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		PollCycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tracker_poll_cycle_duration_seconds",
				Help:    "Full poll-and-persist cycle execution time in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		FlightsProcessedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_flights_processed_total",
				Help: "Total flight history records processed",
			},
		),
		StatusSnapshotsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_status_snapshots_total",
				Help: "Total live-status snapshots persisted",
			},
		),
		UpstreamErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_upstream_errors_total",
				Help: "Total upstream API failures by error code",
			},
			[]string{"code"},
		),

		CleanupRowsRemovedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_cleanup_rows_removed_total",
				Help: "Total rows removed by the retention cleanup",
			},
		),
		CleanupCycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tracker_cleanup_cycle_duration_seconds",
				Help:    "Retention cleanup execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
	}
}
