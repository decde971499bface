package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name
const Namespace = "netanalyzer"

// Registry owns one Prometheus registry per Analyzer, so several analyzers
// in one process (tests, embedded use) never collide on registration.
type Registry struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	GraphNodes          prometheus.Gauge
	GraphEdges          prometheus.Gauge
	IngestEdgesTotal    *prometheus.CounterVec
	IngestSkippedTotal  *prometheus.CounterVec
	IngestFailuresTotal *prometheus.CounterVec
	IngestDuration      *prometheus.HistogramVec

	QueriesTotal  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	SlowQueries   *prometheus.CounterVec

	InfluenceReach       prometheus.Histogram
	InfluenceRunsTotal   prometheus.Counter
	CommunityModularity  prometheus.Gauge
	CommunitiesDetected  prometheus.Gauge
	CommunityPassesTotal prometheus.Counter

	registry *prometheus.Registry
	started  time.Time
}

// NewRegistry registers every netanalyzer metric plus the Go runtime and
// process collectors on a fresh registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}
	r.initHTTPMetrics()
	r.initGraphMetrics()
	r.initQueryMetrics()
	r.initAnalysisMetrics()
	r.initSystemMetrics()
	return r
}

// Gatherer exposes the registry to promhttp
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
