// Package telemetry exposes the engine's Prometheus instrumentation.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SymbolsScored counts successful per-symbol analyses.
	SymbolsScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stockscan",
		Name:      "symbols_scored_total",
		Help:      "Number of symbols scored successfully.",
	})

	// AnalysisFailures counts symbols dropped from a batch.
	AnalysisFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stockscan",
		Name:      "analysis_failures_total",
		Help:      "Number of symbols dropped due to errors or short history.",
	})

	// BatchDuration tracks wall time of batch ranking runs.
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stockscan",
		Name:      "batch_duration_seconds",
		Help:      "Duration of batch analysis runs.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	// ProviderRequests counts upstream data provider calls by source and
	// outcome.
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockscan",
		Name:      "provider_requests_total",
		Help:      "Data provider requests by provider and status.",
	}, []string{"provider", "status"})
)

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
