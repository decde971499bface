package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.InfluenceReach = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "influence_reach",
			Help:      "Nodes influenced per diffusion run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	r.InfluenceRunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "influence_runs_total",
			Help:      "Total number of diffusion runs",
		},
	)

	r.CommunityModularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "community_modularity",
			Help:      "Modularity of the most recent community detection",
		},
	)

	r.CommunitiesDetected = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "communities_detected",
			Help:      "Number of communities found by the most recent detection",
		},
	)

	r.CommunityPassesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "community_passes_total",
			Help:      "Total number of local-move passes run",
		},
	)
}
