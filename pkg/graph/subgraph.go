package graph

import (
	"slices"
)

// Subgraph is an adjacency map restricted to a node subset. Every member
// node has an entry, possibly empty.
type Subgraph map[uint64]map[uint64]uint64

// Induced returns the subgraph induced by ids. Ids absent from the graph are
// skipped; duplicates are harmless.
func (s *Snapshot) Induced(ids []uint64) Subgraph {
	members := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if i, ok := s.Index(id); ok {
			members[i] = struct{}{}
		}
	}

	sub := make(Subgraph, len(members))
	for i := range members {
		neighbors := make(map[uint64]uint64)
		weights := s.NeighborWeights(i)
		for k, j := range s.Neighbors(i) {
			if _, ok := members[int(j)]; ok {
				neighbors[s.ids[j]] = weights[k]
			}
		}
		sub[s.ids[i]] = neighbors
	}
	return sub
}

// Adjacency returns a copy of the whole graph as an adjacency map
func (s *Snapshot) Adjacency() Subgraph {
	return s.Induced(s.ids)
}

// Nodes returns the member node ids in ascending order
func (g Subgraph) Nodes() []uint64 {
	ids := make([]uint64, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EdgeCount returns the number of undirected edges in the subgraph
func (g Subgraph) EdgeCount() int {
	entries := 0
	for _, neighbors := range g {
		entries += len(neighbors)
	}
	return entries / 2
}
