package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for boreholed
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec
	HTTPRateLimited      prometheus.Counter

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Business Metrics
	BoreholesInserted   prometheus.Counter
	DuplicateRejections prometheus.Counter
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh
// prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boreholed_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boreholed_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "boreholed_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),
		HTTPRateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "boreholed_http_rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		),

		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boreholed_db_queries_total",
				Help: "Total database queries by operation type and outcome",
			},
			[]string{"query_type", "outcome"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boreholed_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		BoreholesInserted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "boreholed_boreholes_inserted_total",
				Help: "Borehole rows written",
			},
		),
		DuplicateRejections: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "boreholed_duplicate_hole_id_total",
				Help: "Inserts rejected because the hole id already existed",
			},
		),
	}
}
