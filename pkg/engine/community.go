package engine

import (
	"context"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

// DetectCommunities runs single-level modularity optimization from singleton
// communities with the configured pass limit
func (a *Analyzer) DetectCommunities(ctx context.Context) (*algorithms.CommunityResult, error) {
	opts := algorithms.CommunityOptions{MaxPasses: a.settings.Load().maxPasses}
	res, err := query(ctx, a, "detect_communities", func(s *graph.Snapshot) (*algorithms.CommunityResult, error) {
		return algorithms.DetectCommunities(a.exec, s, opts)
	})
	if err != nil {
		return nil, err
	}
	a.metrics.RecordCommunities(res.Modularity, len(res.Communities), res.Passes)
	return res, nil
}

// Modularity scores an arbitrary assignment of nodes to community labels
func (a *Analyzer) Modularity(ctx context.Context, assignment map[uint64]uint64) (float64, error) {
	return query(ctx, a, "modularity", func(s *graph.Snapshot) (float64, error) {
		return algorithms.Modularity(a.exec, s, assignment), nil
	})
}
