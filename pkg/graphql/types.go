package graphql

import (
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

// Node ids are exposed as ID (strings) because they exceed the 32-bit Int range.

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func formatIDs(ids []uint64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = formatID(id)
	}
	return out
}

func parseID(v any) (uint64, error) {
	switch val := v.(type) {
	case string:
		return strconv.ParseUint(val, 10, 64)
	case int:
		if val < 0 {
			return 0, strconv.ErrRange
		}
		return uint64(val), nil
	}
	return 0, strconv.ErrSyntax
}

// edgeRow is one undirected edge of a subgraph, reported once with From < To
type edgeRow struct {
	From   string
	To     string
	Weight int
}

func edgesOf(sub graph.Subgraph) []edgeRow {
	rows := make([]edgeRow, 0)
	for _, u := range sub.Nodes() {
		for v, w := range sub[u] {
			if u < v {
				rows = append(rows, edgeRow{From: formatID(u), To: formatID(v), Weight: int(w)})
			}
		}
	}
	return rows
}

var edgeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Edge",
	Fields: graphql.Fields{
		"from":   field(graphql.NewNonNull(graphql.ID), func(e edgeRow) any { return e.From }),
		"to":     field(graphql.NewNonNull(graphql.ID), func(e edgeRow) any { return e.To }),
		"weight": field(graphql.NewNonNull(graphql.Int), func(e edgeRow) any { return e.Weight }),
	},
})

var edgeInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "EdgeInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"from":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"to":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"weight": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var statsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Stats",
	Fields: graphql.Fields{
		"nodeCount":                    field(graphql.Int, func(s *statsView) any { return s.NodeCount }),
		"edgeCount":                    field(graphql.Int, func(s *statsView) any { return s.EdgeCount }),
		"averageDegree":                field(graphql.Float, func(s *statsView) any { return s.AverageDegree }),
		"maxDegree":                    field(graphql.Int, func(s *statsView) any { return s.MaxDegree }),
		"clusteringEffect":             field(graphql.Float, func(s *statsView) any { return s.ClusteringEffect }),
		"averageClusteringCoefficient": field(graphql.Float, func(s *statsView) any { return s.AverageClusteringCoefficient }),
		"averageCommonNeighbors":       field(graphql.Float, func(s *statsView) any { return s.AverageCommonNeighbors }),
		"maxCommonNeighbors":           field(graphql.Int, func(s *statsView) any { return s.MaxCommonNeighbors }),
	},
})

var degreeCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DegreeCount",
	Fields: graphql.Fields{
		"degree": field(graphql.Int, func(d algorithms.DegreeCount) any { return d.Degree }),
		"count":  field(graphql.Int, func(d algorithms.DegreeCount) any { return d.Count }),
	},
})

var effectCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EffectCount",
	Fields: graphql.Fields{
		"effect": field(graphql.Int, func(e algorithms.EffectCount) any { return e.Effect }),
		"count":  field(graphql.Int, func(e algorithms.EffectCount) any { return e.Count }),
	},
})

var degreeCoefficientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DegreeCoefficient",
	Fields: graphql.Fields{
		"degree":      field(graphql.Int, func(d algorithms.DegreeCoefficient) any { return d.Degree }),
		"coefficient": field(graphql.Float, func(d algorithms.DegreeCoefficient) any { return d.Coefficient }),
	},
})

var bucketType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Bucket",
	Fields: graphql.Fields{
		"lower": field(graphql.Float, func(b algorithms.Bucket) any { return b.Lower }),
		"upper": field(graphql.Float, func(b algorithms.Bucket) any { return b.Upper }),
		"count": field(graphql.Int, func(b algorithms.Bucket) any { return b.Count }),
	},
})

var pathType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Path",
	Fields: graphql.Fields{
		"found": field(graphql.Boolean, func(p *pathView) any { return p.Found }),
		"cost":  field(graphql.Int, func(p *pathView) any { return int(p.Cost) }),
		"nodes": field(graphql.NewList(graphql.ID), func(p *pathView) any { return formatIDs(p.Path) }),
		"edges": field(graphql.NewList(edgeType), func(p *pathView) any { return edgesOf(p.Subgraph) }),
	},
})

var communityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Community",
	Fields: graphql.Fields{
		"id":      field(graphql.ID, func(c algorithms.Community) any { return formatID(c.ID) }),
		"size":    field(graphql.Int, func(c algorithms.Community) any { return len(c.Members) }),
		"members": field(graphql.NewList(graphql.ID), func(c algorithms.Community) any { return formatIDs(c.Members) }),
	},
})

var communitiesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Communities",
	Fields: graphql.Fields{
		"modularity":  field(graphql.Float, func(r *algorithms.CommunityResult) any { return r.Modularity }),
		"passes":      field(graphql.Int, func(r *algorithms.CommunityResult) any { return r.Passes }),
		"moves":       field(graphql.Int, func(r *algorithms.CommunityResult) any { return r.Moves }),
		"communities": field(graphql.NewList(communityType), func(r *algorithms.CommunityResult) any { return r.Communities }),
	},
})

var influenceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "InfluenceRun",
	Fields: graphql.Fields{
		"runId":       field(graphql.ID, func(o *influenceView) any { return o.RunID }),
		"seeds":       field(graphql.NewList(graphql.ID), func(o *influenceView) any { return formatIDs(o.Seeds) }),
		"steps":       field(graphql.Int, func(o *influenceView) any { return o.Steps }),
		"probability": field(graphql.Float, func(o *influenceView) any { return o.Probability }),
		"final":       field(graphql.NewList(graphql.ID), func(o *influenceView) any { return formatIDs(o.Final) }),
		"influenced":  field(graphql.NewList(graphql.ID), func(o *influenceView) any { return formatIDs(o.Influenced) }),
		"historySizes": field(graphql.NewList(graphql.Int), func(o *influenceView) any {
			sizes := make([]int, len(o.History))
			for i, h := range o.History {
				sizes[i] = len(h)
			}
			return sizes
		}),
		"edges": field(graphql.NewList(edgeType), func(o *influenceView) any { return edgesOf(o.Subgraph) }),
	},
})

var ingestResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "IngestResult",
	Fields: graphql.Fields{
		"records":    field(graphql.Int, func(r graph.IngestResult) any { return r.Records }),
		"inserted":   field(graphql.Int, func(r graph.IngestResult) any { return r.Inserted }),
		"duplicates": field(graphql.Int, func(r graph.IngestResult) any { return r.Duplicates }),
		"selfLoops":  field(graphql.Int, func(r graph.IngestResult) any { return r.SelfLoops }),
		"newNodes":   field(graphql.Int, func(r graph.IngestResult) any { return r.NewNodes }),
	},
})

// field builds a field whose resolver reads from a typed source value
func field[T any](typ graphql.Output, get func(T) any) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			src, ok := p.Source.(T)
			if !ok {
				return nil, nil
			}
			return get(src), nil
		},
	}
}
