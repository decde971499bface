package engine

import (
	"github.com/dd0wney/cluso-netanalyzer/pkg/dataset"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

// SourceResult describes one loaded dataset
type SourceResult struct {
	Source string             `json:"source"`
	Scheme string             `json:"scheme"`
	Parse  dataset.ParseStats `json:"parse"`
	Ingest graph.IngestResult `json:"ingest"`
}

// LoadResult describes a completed Load call
type LoadResult struct {
	Sources []SourceResult     `json:"sources"`
	Total   graph.IngestResult `json:"total"`
	Skipped int                `json:"skipped"`
}

// Summary holds every scalar statistic of the graph, computed under one lock
type Summary struct {
	NodeCount                    int     `json:"node_count"`
	EdgeCount                    int     `json:"edge_count"`
	TotalWeight                  uint64  `json:"total_weight"`
	AverageDegree                float64 `json:"average_degree"`
	MaxDegree                    int     `json:"max_degree"`
	ClusteringEffect             float64 `json:"clustering_effect"`
	AverageClusteringCoefficient float64 `json:"average_clustering_coefficient"`
	AverageCommonNeighbors       float64 `json:"average_common_neighbors"`
	MaxCommonNeighbors           int     `json:"max_common_neighbors"`
}

// PathResult is a shortest path together with the subgraph induced by its nodes.
// When Found is false the other fields are empty.
type PathResult struct {
	Found    bool           `json:"found"`
	Cost     uint64         `json:"cost"`
	Path     []uint64       `json:"path"`
	Subgraph graph.Subgraph `json:"subgraph,omitempty"`
}

// InfluenceOutcome is the result of one diffusion run
type InfluenceOutcome struct {
	RunID       string   `json:"run_id"`
	Seeds       []uint64 `json:"seeds"`
	Steps       int      `json:"steps"`
	Probability float64  `json:"probability"`
	// History[k] is the cumulative set of nodes that finished propagating by round k
	History    [][]uint64     `json:"history"`
	Final      []uint64       `json:"final"`
	Influenced []uint64       `json:"influenced"`
	Subgraph   graph.Subgraph `json:"subgraph"`
}
