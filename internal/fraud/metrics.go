package fraud

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trust_engine_fraud_analysis_duration_seconds",
		Help:    "Duration of fraud network analyses",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_fraud_analyses_total",
		Help: "Fraud network analyses performed",
	}, []string{"source"}) // source: "inline", "stored"

	droppedConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trust_engine_fraud_dropped_connections_total",
		Help: "Connections dropped because they referenced unknown nodes",
	})

	ringMembersDetected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trust_engine_fraud_ring_members",
		Help: "Ring members found by the most recent analysis",
	})

	ringAlertsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_engine_fraud_ring_alerts_total",
		Help: "Ring alerts handed to the event bus",
	}, []string{"status"}) // status: "published", "failed"
)

func recordAnalysis(source string, analysis *NetworkAnalysis) {
	analysesTotal.WithLabelValues(source).Inc()
	droppedConnectionsTotal.Add(float64(len(analysis.DroppedConnections)))
	ringMembersDetected.Set(float64(len(analysis.RingMembers)))
}
