package validation

import (
	"strings"
	"testing"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

func ptr[T any](v T) *T { return &v }

func TestStruct_InfluenceRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     InfluenceRequest
		wantErr string
	}{
		{"Empty", InfluenceRequest{}, ""},
		{"Full", InfluenceRequest{Seeds: []uint64{1, 2}, Steps: ptr(10), Probability: ptr(0.2)}, ""},
		{"ZeroStepsAllowed", InfluenceRequest{Steps: ptr(0), Probability: ptr(0.0)}, ""},
		{"NegativeSteps", InfluenceRequest{Steps: ptr(-1)}, "Steps"},
		{"TooManySteps", InfluenceRequest{Steps: ptr(100_001)}, "Steps"},
		{"ProbabilityAboveOne", InfluenceRequest{Probability: ptr(1.5)}, "Probability"},
		{"ProbabilityNegative", InfluenceRequest{Probability: ptr(-0.5)}, "Probability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct("simulate_influence", &tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !graph.IsInvalidArgument(err) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not name %s", err, tt.wantErr)
			}
		})
	}
}

func TestStruct_IngestRequest(t *testing.T) {
	valid := IngestRequest{Edges: []EdgeRequest{
		{From: ptr(uint64(0)), To: ptr(uint64(1))},
		{From: ptr(uint64(1)), To: ptr(uint64(2)), Weight: 4},
	}}
	if err := Struct("ingest", &valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edges := valid.ToEdges()
	if len(edges) != 2 || edges[0].From != 0 || edges[1].Weight != 4 {
		t.Errorf("ToEdges() = %+v", edges)
	}

	invalid := []IngestRequest{
		{},
		{Edges: []EdgeRequest{{From: ptr(uint64(1))}}},
	}
	for i, req := range invalid {
		if err := Struct("ingest", &req); !graph.IsInvalidArgument(err) {
			t.Errorf("case %d: expected invalid argument, got %v", i, err)
		}
	}
}

func TestStruct_SmallRequests(t *testing.T) {
	if err := Struct("coefficient_distribution", &DistributionRequest{Bins: 0}); !graph.IsInvalidArgument(err) {
		t.Errorf("bins=0: expected invalid argument, got %v", err)
	}
	if err := Struct("coefficient_distribution", &DistributionRequest{Bins: 10}); err != nil {
		t.Errorf("bins=10: unexpected error %v", err)
	}
	if err := Struct("best_starting_nodes", &StartNodesRequest{N: -1}); !graph.IsInvalidArgument(err) {
		t.Errorf("n=-1: expected invalid argument, got %v", err)
	}
	if err := Struct("shortest_path", &PathRequest{Start: ptr(uint64(1))}); !graph.IsInvalidArgument(err) {
		t.Errorf("missing end: expected invalid argument, got %v", err)
	}
	if err := Struct("shortest_path", nil); !graph.IsInvalidArgument(err) {
		t.Errorf("nil request: expected invalid argument, got %v", err)
	}
}
