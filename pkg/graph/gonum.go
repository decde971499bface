package graph

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"
)

// ToGonum exports the snapshot as a gonum weighted undirected graph so the
// gonum algorithm suite (community.Q, path.DijkstraFrom, ...) can be run
// against the same data. Node ids above math.MaxInt64 are not representable
// in gonum and are skipped.
func ToGonum(s *Snapshot) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))

	for _, id := range s.ids {
		if id > math.MaxInt64 {
			continue
		}
		g.AddNode(simple.Node(int64(id)))
	}

	for i, id := range s.ids {
		if id > math.MaxInt64 {
			continue
		}
		weights := s.NeighborWeights(i)
		for k, j := range s.Neighbors(i) {
			other := s.ids[j]
			if int(j) <= i || other > math.MaxInt64 {
				continue
			}
			g.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(int64(id)),
				T: simple.Node(int64(other)),
				W: float64(weights[k]),
			})
		}
	}
	return g
}
