package metrics

import "time"

// Values of the status label on queries_total
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// AddHTTPInFlight adjusts the in-flight request gauge
func (r *Registry) AddHTTPInFlight(delta float64) {
	r.HTTPRequestsInFlight.Add(delta)
}

// SlowQueryThreshold is the duration above which a query also counts as slow
const SlowQueryThreshold = time.Second

// RecordQuery records one analyzer query. duration includes the wait for the
// store lock.
func (r *Registry) RecordQuery(query, status string, duration time.Duration) {
	r.QueriesTotal.WithLabelValues(query, status).Inc()
	r.QueryDuration.WithLabelValues(query).Observe(duration.Seconds())

	if duration > SlowQueryThreshold {
		r.SlowQueries.WithLabelValues(query).Inc()
	}
}

// SetGraphSize publishes the current node and edge counts
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordIngest records the outcome counts of one applied batch
func (r *Registry) RecordIngest(scheme string, inserted, duplicates, selfLoops int, duration time.Duration) {
	r.IngestEdgesTotal.WithLabelValues("inserted").Add(float64(inserted))
	r.IngestEdgesTotal.WithLabelValues("duplicate").Add(float64(duplicates))
	r.IngestEdgesTotal.WithLabelValues("self_loop").Add(float64(selfLoops))
	r.IngestDuration.WithLabelValues(scheme).Observe(duration.Seconds())
}

// RecordSkipped counts parser lines skipped for the given reason
func (r *Registry) RecordSkipped(reason string, n int) {
	if n > 0 {
		r.IngestSkippedTotal.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordIngestFailure counts a source that could not be read
func (r *Registry) RecordIngestFailure(scheme string) {
	r.IngestFailuresTotal.WithLabelValues(scheme).Inc()
}

// RecordInfluence records the reach of one diffusion run
func (r *Registry) RecordInfluence(reach int) {
	r.InfluenceRunsTotal.Inc()
	r.InfluenceReach.Observe(float64(reach))
}

// RecordCommunities publishes the outcome of a community detection
func (r *Registry) RecordCommunities(modularity float64, communities, passes int) {
	r.CommunityModularity.Set(modularity)
	r.CommunitiesDetected.Set(float64(communities))
	r.CommunityPassesTotal.Add(float64(passes))
}
