package engine

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
	"github.com/dd0wney/cluso-netanalyzer/pkg/validation"
)

// SimulateInfluence runs one independent cascade. Omitted steps and
// probability take the configured defaults; omitted seeds mean one node
// chosen uniformly at random. Seeds absent from the graph are ignored.
func (a *Analyzer) SimulateInfluence(ctx context.Context, req validation.InfluenceRequest) (*InfluenceOutcome, error) {
	const op = "simulate_influence"
	if err := validation.Struct(op, &req); err != nil {
		return nil, a.reject(ctx, op, err)
	}

	defaults := a.settings.Load()
	params := algorithms.InfluenceParams{
		Seeds:       req.Seeds,
		Steps:       defaults.steps,
		Probability: defaults.probability,
	}
	if req.Steps != nil {
		params.Steps = *req.Steps
	}
	if req.Probability != nil {
		params.Probability = *req.Probability
	}
	if err := algorithms.ValidateInfluence(params); err != nil {
		return nil, a.reject(ctx, op, err)
	}

	runID := uuid.NewString()
	out, err := query(ctx, a, op, func(s *graph.Snapshot) (*InfluenceOutcome, error) {
		p := params
		if len(p.Seeds) == 0 && s.Len() > 0 {
			p.Seeds = []uint64{s.ID(a.rng.IntN(s.Len()))}
		}

		res, err := algorithms.SimulateInfluence(a.exec, s, a.rng, p)
		if err != nil {
			return nil, err
		}
		return &InfluenceOutcome{
			RunID:       runID,
			Seeds:       p.Seeds,
			Steps:       p.Steps,
			Probability: p.Probability,
			History:     res.History,
			Final:       res.Final,
			Influenced:  res.Influenced,
			Subgraph:    s.Induced(res.Influenced),
		}, nil
	},
		attribute.String("run_id", runID),
		attribute.Int("influence.steps", params.Steps),
		attribute.Float64("influence.probability", params.Probability))
	if err != nil {
		return nil, err
	}

	a.metrics.RecordInfluence(len(out.Influenced))
	a.logger.Info("influence simulated",
		logging.RunID(runID),
		logging.Int("seeds", len(out.Seeds)),
		logging.Int("influenced", len(out.Influenced)),
		logging.Int("final", len(out.Final)))
	return out, nil
}

// BestStartingNodes returns up to n pairwise non-adjacent high-degree nodes
func (a *Analyzer) BestStartingNodes(ctx context.Context, n int) ([]uint64, error) {
	const op = "best_starting_nodes"
	if err := validation.Struct(op, &validation.StartNodesRequest{N: n}); err != nil {
		return nil, a.reject(ctx, op, err)
	}
	return query(ctx, a, op, func(s *graph.Snapshot) ([]uint64, error) {
		return algorithms.BestStartingNodes(s, n)
	}, attribute.Int("n", n))
}
