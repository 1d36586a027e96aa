// Package metrics provides Prometheus metrics for the HTTP server and the
// analysis pipeline.
//
// HTTP:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - rate_limiter_buckets_total: Gauge of live per-IP buckets
//
// Analysis:
//   - analysis_total: Counter with outcome label
//   - analysis_detections_total: Counter with kind label (drug, interaction, side_effect)
//   - analysis_duration_seconds: Histogram with endpoint label
//   - reference_reloads_total: Counter with outcome label
//   - reference_table_size: Gauge with table label
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_total",
			Help: "Analysis requests by outcome",
		},
		[]string{"outcome"},
	)

	DetectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_detections_total",
			Help: "Findings emitted by the pipeline",
		},
		[]string{"kind"},
	)

	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Time spent in the annotation pipeline",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"endpoint"},
	)

	ReferenceReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reference_reloads_total",
			Help: "Reference table loads by outcome",
		},
		[]string{"outcome"},
	)

	ReferenceTableSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reference_table_size",
			Help: "Rows in the active reference tables",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(AnalysisTotal)
	prometheus.MustRegister(DetectionsTotal)
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(ReferenceReloadsTotal)
	prometheus.MustRegister(ReferenceTableSize)
}

// RecordAnalysis counts one pipeline run and its findings
func RecordAnalysis(endpoint string, seconds float64, drugs, interactions, sideEffects int) {
	AnalysisTotal.WithLabelValues("success").Inc()
	AnalysisDuration.WithLabelValues(endpoint).Observe(seconds)
	DetectionsTotal.WithLabelValues("drug").Add(float64(drugs))
	DetectionsTotal.WithLabelValues("interaction").Add(float64(interactions))
	DetectionsTotal.WithLabelValues("side_effect").Add(float64(sideEffects))
}

// RecordRejected counts a request turned away before analysis
func RecordRejected(kind string) {
	AnalysisTotal.WithLabelValues(kind).Inc()
}
