package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes in the graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "graph_edges",
			Help:      "Number of undirected edges in the graph",
		},
	)

	r.IngestEdgesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ingest_edges_total",
			Help:      "Edge records handed to the store, by outcome",
		},
		[]string{"outcome"},
	)

	r.IngestSkippedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ingest_skipped_total",
			Help:      "Input lines skipped by the edge-list parser",
		},
		[]string{"reason"},
	)

	r.IngestFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ingest_failures_total",
			Help:      "Sources that could not be read",
		},
		[]string{"scheme"},
	)

	r.IngestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time to read and apply one source",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"scheme"},
	)
}
