package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("write %v: %v", m.Desc(), err)
	}
	switch {
	case out.Counter != nil:
		return out.Counter.GetValue()
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	case out.Histogram != nil:
		return float64(out.Histogram.GetSampleCount())
	}
	t.Fatalf("unsupported metric type for %v", m.Desc())
	return 0
}

func gathered(t *testing.T, r *Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.SetGraphSize(3, 2)

	if value(t, b.GraphNodes) != 0 {
		t.Error("registries share the graph_nodes gauge")
	}
}

func TestRecordQuery(t *testing.T) {
	r := NewRegistry()

	r.RecordQuery("shortest_path", StatusSuccess, 50*time.Millisecond)
	r.RecordQuery("shortest_path", StatusSuccess, SlowQueryThreshold+time.Millisecond)
	r.RecordQuery("clustering_coefficient_distribution", StatusError, time.Millisecond)

	tests := []struct {
		name string
		m    prometheus.Metric
		want float64
	}{
		{"success", r.QueriesTotal.WithLabelValues("shortest_path", StatusSuccess), 2},
		{"error", r.QueriesTotal.WithLabelValues("clustering_coefficient_distribution", StatusError), 1},
		{"slow", r.SlowQueries.WithLabelValues("shortest_path"), 1},
		{"not slow", r.SlowQueries.WithLabelValues("clustering_coefficient_distribution"), 0},
	}
	for _, tt := range tests {
		if got := value(t, tt.m); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRecordIngest(t *testing.T) {
	r := NewRegistry()

	r.RecordIngest("file", 10, 3, 1, 20*time.Millisecond)
	r.RecordIngest("s3", 5, 0, 0, time.Second)
	r.RecordSkipped("malformed", 4)
	r.RecordSkipped("comment", 0)
	r.RecordIngestFailure("s3")
	r.SetGraphSize(12, 15)

	tests := []struct {
		name string
		m    prometheus.Metric
		want float64
	}{
		{"inserted", r.IngestEdgesTotal.WithLabelValues("inserted"), 15},
		{"duplicate", r.IngestEdgesTotal.WithLabelValues("duplicate"), 3},
		{"self loops", r.IngestEdgesTotal.WithLabelValues("self_loop"), 1},
		{"malformed", r.IngestSkippedTotal.WithLabelValues("malformed"), 4},
		{"s3 failures", r.IngestFailuresTotal.WithLabelValues("s3"), 1},
		{"nodes", r.GraphNodes, 12},
		{"edges", r.GraphEdges, 15},
	}
	for _, tt := range tests {
		if got := value(t, tt.m); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	// a zero skip count must not create the series
	for _, m := range gathered(t, r)[Namespace+"_ingest_skipped_total"].GetMetric() {
		if m.GetLabel()[0].GetValue() == "comment" {
			t.Error("comment series created for a zero count")
		}
	}
}

func TestAnalysisMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordInfluence(40)
	r.RecordInfluence(2)
	r.RecordCommunities(0.42, 3, 2)
	r.RecordCommunities(0.40, 4, 5)

	var reach dto.Metric
	if err := r.InfluenceReach.Write(&reach); err != nil {
		t.Fatal(err)
	}
	if reach.Histogram.GetSampleCount() != 2 || reach.Histogram.GetSampleSum() != 42 {
		t.Errorf("reach count=%d sum=%v, want 2 and 42",
			reach.Histogram.GetSampleCount(), reach.Histogram.GetSampleSum())
	}
	if got := value(t, r.InfluenceRunsTotal); got != 2 {
		t.Errorf("influence runs = %v", got)
	}

	// gauges keep the latest run, the pass counter accumulates
	if got := value(t, r.CommunityModularity); got != 0.40 {
		t.Errorf("modularity = %v", got)
	}
	if got := value(t, r.CommunitiesDetected); got != 4 {
		t.Errorf("communities = %v", got)
	}
	if got := value(t, r.CommunityPassesTotal); got != 7 {
		t.Errorf("passes = %v", got)
	}
}

func TestGatheredFamilies(t *testing.T) {
	r := NewRegistry()
	r.RecordQuery("summary", StatusSuccess, time.Millisecond)
	r.RecordHTTPRequest("GET", "GET /api/v1/stats", "200", time.Millisecond)

	families := gathered(t, r)
	for name := range families {
		if !strings.HasPrefix(name, Namespace+"_") && !strings.HasPrefix(name, "go_") && !strings.HasPrefix(name, "process_") {
			t.Errorf("unexpected family %s", name)
		}
	}

	for _, want := range []string{
		"netanalyzer_graph_nodes",
		"netanalyzer_queries_total",
		"netanalyzer_query_duration_seconds",
		"netanalyzer_http_requests_total",
		"netanalyzer_uptime_seconds",
		"go_goroutines",
	} {
		if families[want] == nil {
			t.Errorf("family %s not gathered", want)
		}
	}

	if up := families["netanalyzer_uptime_seconds"].GetMetric()[0].GetGauge().GetValue(); up < 0 {
		t.Errorf("uptime = %v", up)
	}
}

func TestConcurrentRecording(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				r.RecordQuery("max_degree", StatusSuccess, time.Millisecond)
				r.AddHTTPInFlight(1)
				r.AddHTTPInFlight(-1)
			}
		}()
	}
	wg.Wait()

	if got := value(t, r.QueriesTotal.WithLabelValues("max_degree", StatusSuccess)); got != 1000 {
		t.Errorf("queries = %v, want 1000", got)
	}
	if got := value(t, r.HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}

func BenchmarkRecordQuery(b *testing.B) {
	r := NewRegistry()
	for b.Loop() {
		r.RecordQuery("summary", StatusSuccess, 10*time.Millisecond)
	}
}
