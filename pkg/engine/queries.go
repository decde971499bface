package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/validation"
)

// Statistics returns store counters without compiling a snapshot
func (a *Analyzer) Statistics() graph.Statistics {
	return a.store.Statistics()
}

// NodeCount returns the number of nodes
func (a *Analyzer) NodeCount(ctx context.Context) (int, error) {
	return query(ctx, a, "node_count", func(s *graph.Snapshot) (int, error) {
		return s.Len(), nil
	})
}

// EdgeCount returns the number of undirected edges
func (a *Analyzer) EdgeCount(ctx context.Context) (int, error) {
	return query(ctx, a, "edge_count", func(s *graph.Snapshot) (int, error) {
		return s.EdgeCount(), nil
	})
}

// Summary computes every scalar statistic in one pass under the lock
func (a *Analyzer) Summary(ctx context.Context) (*Summary, error) {
	return query(ctx, a, "summary", func(s *graph.Snapshot) (*Summary, error) {
		return &Summary{
			NodeCount:                    s.Len(),
			EdgeCount:                    s.EdgeCount(),
			TotalWeight:                  s.TotalWeight() / 2,
			AverageDegree:                algorithms.AverageDegree(a.exec, s),
			MaxDegree:                    algorithms.MaxDegree(a.exec, s),
			ClusteringEffect:             algorithms.ClusteringEffect(a.exec, s),
			AverageClusteringCoefficient: algorithms.AverageClusteringCoefficient(a.exec, s),
			AverageCommonNeighbors:       algorithms.AverageCommonNeighbors(a.exec, s),
			MaxCommonNeighbors:           algorithms.MaxCommonNeighbors(a.exec, s),
		}, nil
	})
}

// AverageDegree returns the mean neighbor-set size, 0 for an empty graph
func (a *Analyzer) AverageDegree(ctx context.Context) (float64, error) {
	return query(ctx, a, "average_degree", func(s *graph.Snapshot) (float64, error) {
		return algorithms.AverageDegree(a.exec, s), nil
	})
}

// MaxDegree returns the largest neighbor-set size
func (a *Analyzer) MaxDegree(ctx context.Context) (int, error) {
	return query(ctx, a, "max_degree", func(s *graph.Snapshot) (int, error) {
		return algorithms.MaxDegree(a.exec, s), nil
	})
}

// DegreeDistribution returns (degree, count) rows sorted by degree
func (a *Analyzer) DegreeDistribution(ctx context.Context) ([]algorithms.DegreeCount, error) {
	return query(ctx, a, "degree_distribution", func(s *graph.Snapshot) ([]algorithms.DegreeCount, error) {
		return algorithms.DegreeDistribution(a.exec, s), nil
	})
}

// ClusteringEffect returns the mean unnormalized triangle-adjacency count
func (a *Analyzer) ClusteringEffect(ctx context.Context) (float64, error) {
	return query(ctx, a, "clustering_effect", func(s *graph.Snapshot) (float64, error) {
		return algorithms.ClusteringEffect(a.exec, s), nil
	})
}

// ClusteringEffectDistribution returns (effect, count) rows sorted by effect
func (a *Analyzer) ClusteringEffectDistribution(ctx context.Context) ([]algorithms.EffectCount, error) {
	return query(ctx, a, "clustering_effect_distribution", func(s *graph.Snapshot) ([]algorithms.EffectCount, error) {
		return algorithms.ClusteringEffectDistribution(a.exec, s), nil
	})
}

// AverageClusteringCoefficient returns the mean local coefficient over all nodes
func (a *Analyzer) AverageClusteringCoefficient(ctx context.Context) (float64, error) {
	return query(ctx, a, "average_clustering_coefficient", func(s *graph.Snapshot) (float64, error) {
		return algorithms.AverageClusteringCoefficient(a.exec, s), nil
	})
}

// LocalClusteringCoefficient returns the coefficient of one node, 0 when absent
func (a *Analyzer) LocalClusteringCoefficient(ctx context.Context, id uint64) (float64, error) {
	return query(ctx, a, "local_clustering_coefficient", func(s *graph.Snapshot) (float64, error) {
		return algorithms.LocalClusteringCoefficient(s, id), nil
	}, attribute.Int64("node", int64(id)))
}

// AllClusteringCoefficients returns every local coefficient as a bag sorted ascending
func (a *Analyzer) AllClusteringCoefficients(ctx context.Context) ([]float64, error) {
	return query(ctx, a, "all_clustering_coefficients", func(s *graph.Snapshot) ([]float64, error) {
		return algorithms.AllClusteringCoefficients(a.exec, s), nil
	})
}

// ClusteringCoefficientDistribution buckets the local coefficients into bins
// equal-width buckets. bins must be at least 1.
func (a *Analyzer) ClusteringCoefficientDistribution(ctx context.Context, bins int) ([]algorithms.Bucket, error) {
	const op = "clustering_coefficient_distribution"
	if err := validation.Struct(op, &validation.DistributionRequest{Bins: bins}); err != nil {
		return nil, a.reject(ctx, op, err)
	}
	return query(ctx, a, op, func(s *graph.Snapshot) ([]algorithms.Bucket, error) {
		return algorithms.ClusteringCoefficientDistribution(a.exec, s, bins)
	}, attribute.Int("bins", bins))
}

// ClusteringEffectByDegree returns the mean coefficient per degree
func (a *Analyzer) ClusteringEffectByDegree(ctx context.Context) ([]algorithms.DegreeCoefficient, error) {
	return query(ctx, a, "clustering_effect_by_degree", func(s *graph.Snapshot) ([]algorithms.DegreeCoefficient, error) {
		return algorithms.ClusteringEffectByDegree(a.exec, s), nil
	})
}

// AverageCommonNeighbors averages |N(a) ∩ N(b)| over all n² ordered pairs
func (a *Analyzer) AverageCommonNeighbors(ctx context.Context) (float64, error) {
	return query(ctx, a, "average_common_neighbors", func(s *graph.Snapshot) (float64, error) {
		return algorithms.AverageCommonNeighbors(a.exec, s), nil
	})
}

// MaxCommonNeighbors returns the largest |N(a) ∩ N(b)| over pairs a <= b
func (a *Analyzer) MaxCommonNeighbors(ctx context.Context) (int, error) {
	return query(ctx, a, "max_common_neighbors", func(s *graph.Snapshot) (int, error) {
		return algorithms.MaxCommonNeighbors(a.exec, s), nil
	})
}

// Graph returns a copy of the whole adjacency map
func (a *Analyzer) Graph(ctx context.Context) (graph.Subgraph, error) {
	return query(ctx, a, "graph", func(s *graph.Snapshot) (graph.Subgraph, error) {
		return s.Adjacency(), nil
	})
}
