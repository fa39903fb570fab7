package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// outOfScopeReason labels providers that failed the need or region requirement
const outOfScopeReason = "out_of_scope"

var (
	rankDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trust_engine_rank_duration_seconds",
		Help:    "Duration of provider ranking computations",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	suggestionsReturned = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trust_engine_suggestions_returned",
		Help:    "Number of suggestions returned per request",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
	}, []string{"source"}) // source: "inline", "stored"

	providersDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_providers_dropped_total",
		Help: "Providers removed before ranking, by rule",
	}, []string{"reason"})
)

func recordRankResult(source string, result *RankResult) {
	suggestionsReturned.WithLabelValues(source).Observe(float64(len(result.Suggestions)))
	for _, ex := range result.Excluded {
		providersDropped.WithLabelValues(string(ex.Reason)).Inc()
	}
	if n := len(result.OutOfScope); n > 0 {
		providersDropped.WithLabelValues(outOfScopeReason).Add(float64(n))
	}
}
