package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-netanalyzer/pkg/engine"
	"github.com/dd0wney/cluso-netanalyzer/pkg/validation"
)

type (
	statsView     = engine.Summary
	pathView      = engine.PathResult
	influenceView = engine.InfluenceOutcome
)

// NewSchema builds the query and mutation schema over an analyzer
func NewSchema(a *engine.Analyzer) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"stats": &graphql.Field{
				Type: statsType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return a.Summary(p.Context)
				},
			},
			"degreeDistribution": &graphql.Field{
				Type: graphql.NewList(degreeCountType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return a.DegreeDistribution(p.Context)
				},
			},
			"clusteringEffectDistribution": &graphql.Field{
				Type: graphql.NewList(effectCountType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return a.ClusteringEffectDistribution(p.Context)
				},
			},
			"clusteringCoefficient": &graphql.Field{
				Type: graphql.Float,
				Args: graphql.FieldConfigArgument{
					"node": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, err := nodeArg(p, "node")
					if err != nil {
						return nil, err
					}
					return a.LocalClusteringCoefficient(p.Context, id)
				},
			},
			"clusteringCoefficients": &graphql.Field{
				Type: graphql.NewList(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return a.AllClusteringCoefficients(p.Context)
				},
			},
			"coefficientDistribution": &graphql.Field{
				Type: graphql.NewList(bucketType),
				Args: graphql.FieldConfigArgument{
					"bins": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					bins, ok := p.Args["bins"].(int)
					if !ok {
						bins = a.DefaultBins()
					}
					return a.ClusteringCoefficientDistribution(p.Context, bins)
				},
			},
			"clusteringByDegree": &graphql.Field{
				Type: graphql.NewList(degreeCoefficientType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return a.ClusteringEffectByDegree(p.Context)
				},
			},
			"shortestPath": &graphql.Field{
				Type: pathType,
				Args: graphql.FieldConfigArgument{
					"start": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"end":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					start, err := nodeArg(p, "start")
					if err != nil {
						return nil, err
					}
					end, err := nodeArg(p, "end")
					if err != nil {
						return nil, err
					}
					return a.ShortestPath(p.Context, start, end)
				},
			},
			"communities": &graphql.Field{
				Type: communitiesType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return a.DetectCommunities(p.Context)
				},
			},
			"bestStartingNodes": &graphql.Field{
				Type: graphql.NewList(graphql.ID),
				Args: graphql.FieldConfigArgument{
					"n": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					nodes, err := a.BestStartingNodes(p.Context, p.Args["n"].(int))
					if err != nil {
						return nil, err
					}
					return formatIDs(nodes), nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"ingest": &graphql.Field{
				Type: ingestResultType,
				Args: graphql.FieldConfigArgument{
					"edges": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edgeInputType))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					req, err := ingestArg(p.Args["edges"])
					if err != nil {
						return nil, err
					}
					return a.IngestRequest(p.Context, req)
				},
			},
			"simulateInfluence": &graphql.Field{
				Type: influenceType,
				Args: graphql.FieldConfigArgument{
					"seeds":       &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
					"steps":       &graphql.ArgumentConfig{Type: graphql.Int},
					"probability": &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					req, err := influenceArg(p.Args)
					if err != nil {
						return nil, err
					}
					return a.SimulateInfluence(p.Context, req)
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

func nodeArg(p graphql.ResolveParams, name string) (uint64, error) {
	id, err := parseID(p.Args[name])
	if err != nil {
		return 0, fmt.Errorf("%s: invalid node id %v", name, p.Args[name])
	}
	return id, nil
}

func ingestArg(raw any) (*validation.IngestRequest, error) {
	items, _ := raw.([]any)
	req := &validation.IngestRequest{Edges: make([]validation.EdgeRequest, 0, len(items))}
	for i, item := range items {
		fields, _ := item.(map[string]any)
		from, err := parseID(fields["from"])
		if err != nil {
			return nil, fmt.Errorf("edges[%d].from: invalid node id", i)
		}
		to, err := parseID(fields["to"])
		if err != nil {
			return nil, fmt.Errorf("edges[%d].to: invalid node id", i)
		}
		edge := validation.EdgeRequest{From: &from, To: &to}
		if w, ok := fields["weight"].(int); ok {
			if w < 1 {
				return nil, fmt.Errorf("edges[%d].weight: must be at least 1", i)
			}
			edge.Weight = uint64(w)
		}
		req.Edges = append(req.Edges, edge)
	}
	return req, nil
}

func influenceArg(args map[string]any) (validation.InfluenceRequest, error) {
	var req validation.InfluenceRequest
	if raw, ok := args["seeds"].([]any); ok {
		for _, v := range raw {
			id, err := parseID(v)
			if err != nil {
				return req, fmt.Errorf("seeds: invalid node id %v", v)
			}
			req.Seeds = append(req.Seeds, id)
		}
	}
	if steps, ok := args["steps"].(int); ok {
		req.Steps = &steps
	}
	if prob, ok := args["probability"].(float64); ok {
		req.Probability = &prob
	}
	return req, nil
}
