package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

func endpoints(start, end uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("path.start", int64(start)),
		attribute.Int64("path.end", int64(end)),
	}
}

// ShortestPathCost returns the weighted distance between two nodes. ok is
// false when either node is absent or they are disconnected.
func (a *Analyzer) ShortestPathCost(ctx context.Context, start, end uint64) (cost uint64, ok bool, err error) {
	type found struct {
		cost uint64
		ok   bool
	}
	res, err := query(ctx, a, "shortest_path_cost", func(s *graph.Snapshot) (found, error) {
		c, ok := algorithms.ShortestPathCost(s, start, end)
		return found{c, ok}, nil
	}, endpoints(start, end)...)
	return res.cost, res.ok, err
}

// ShortestPath returns the path, its cost and the subgraph induced by the
// path nodes
func (a *Analyzer) ShortestPath(ctx context.Context, start, end uint64) (*PathResult, error) {
	return query(ctx, a, "shortest_path", func(s *graph.Snapshot) (*PathResult, error) {
		path, cost, ok := algorithms.ShortestPath(s, start, end)
		if !ok {
			return &PathResult{Path: []uint64{}}, nil
		}
		return &PathResult{
			Found:    true,
			Cost:     cost,
			Path:     path,
			Subgraph: s.Induced(path),
		}, nil
	}, endpoints(start, end)...)
}
