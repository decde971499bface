package api

import (
	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/api/middleware"
	"github.com/dd0wney/cluso-netanalyzer/pkg/engine"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse = middleware.ErrorBody

// StatsResponse combines the store counters with the scalar statistics
type StatsResponse struct {
	Ingestions uint64 `json:"ingestions"`
	engine.Summary
}

// DegreeDistributionResponse lists node counts per degree, ascending
type DegreeDistributionResponse struct {
	Distribution []algorithms.DegreeCount `json:"distribution"`
}

// ClusteringEffectResponse reports the global clustering effect and its distribution
type ClusteringEffectResponse struct {
	ClusteringEffect float64                  `json:"clustering_effect"`
	Distribution     []algorithms.EffectCount `json:"distribution"`
}

// CoefficientsResponse is the sorted bag of local coefficients
type CoefficientsResponse struct {
	Average      float64   `json:"average"`
	Coefficients []float64 `json:"coefficients"`
}

// CoefficientResponse is the local coefficient of one node
type CoefficientResponse struct {
	Node        uint64  `json:"node"`
	Coefficient float64 `json:"coefficient"`
}

// BucketsResponse is an equal-width histogram of local coefficients
type BucketsResponse struct {
	Bins    int                 `json:"bins"`
	Buckets []algorithms.Bucket `json:"buckets"`
}

// ByDegreeResponse lists the mean local coefficient per degree
type ByDegreeResponse struct {
	ByDegree []algorithms.DegreeCoefficient `json:"by_degree"`
}

// CommonNeighborsResponse reports neighborhood overlap statistics
type CommonNeighborsResponse struct {
	Average float64 `json:"average"`
	Max     int     `json:"max"`
}

// SeedsResponse lists recommended diffusion starting nodes
type SeedsResponse struct {
	N     int      `json:"n"`
	Nodes []uint64 `json:"nodes"`
}

// GraphResponse is a copy of the adjacency map
type GraphResponse struct {
	Nodes     int            `json:"nodes"`
	Edges     int            `json:"edges"`
	Adjacency graph.Subgraph `json:"adjacency"`
}
