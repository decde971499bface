package graph

import (
	"slices"
)

// Snapshot is an index-addressable compilation of the adjacency map.
//
// Node ids are sorted ascending and index i refers to ids[i], so iterating
// indices visits nodes in id order. Neighbor lists are stored in CSR form,
// sorted by neighbor index, with a parallel weight slice.
type Snapshot struct {
	ids   []uint64
	index map[uint64]int32

	offsets []int   // len(ids)+1, neighbors of i are targets[offsets[i]:offsets[i+1]]
	targets []int32 // neighbor indices
	weights []uint64

	weightedDegree []uint64
	totalWeight    uint64 // sum over directed entries, i.e. 2m
}

func compile(adj map[uint64]map[uint64]uint64) *Snapshot {
	ids := make([]uint64, 0, len(adj))
	entries := 0
	for id, neighbors := range adj {
		ids = append(ids, id)
		entries += len(neighbors)
	}
	slices.Sort(ids)

	index := make(map[uint64]int32, len(ids))
	for i, id := range ids {
		index[id] = int32(i)
	}

	s := &Snapshot{
		ids:            ids,
		index:          index,
		offsets:        make([]int, len(ids)+1),
		targets:        make([]int32, 0, entries),
		weights:        make([]uint64, 0, entries),
		weightedDegree: make([]uint64, len(ids)),
	}

	type entry struct {
		target int32
		weight uint64
	}
	scratch := make([]entry, 0)

	for i, id := range ids {
		scratch = scratch[:0]
		for nbr, w := range adj[id] {
			scratch = append(scratch, entry{target: index[nbr], weight: w})
		}
		slices.SortFunc(scratch, func(a, b entry) int {
			return int(a.target) - int(b.target)
		})

		var kw uint64
		for _, e := range scratch {
			s.targets = append(s.targets, e.target)
			s.weights = append(s.weights, e.weight)
			kw += e.weight
		}
		s.weightedDegree[i] = kw
		s.totalWeight += kw
		s.offsets[i+1] = len(s.targets)
	}

	return s
}

// Len returns the number of nodes
func (s *Snapshot) Len() int {
	return len(s.ids)
}

// EdgeCount returns the number of undirected edges
func (s *Snapshot) EdgeCount() int {
	return len(s.targets) / 2
}

// IDs returns node ids in ascending order. The slice must not be modified.
func (s *Snapshot) IDs() []uint64 {
	return s.ids
}

// ID returns the node id stored at index i
func (s *Snapshot) ID(i int) uint64 {
	return s.ids[i]
}

// Index returns the index of a node id
func (s *Snapshot) Index(id uint64) (int, bool) {
	i, ok := s.index[id]
	return int(i), ok
}

// Has reports whether the node exists
func (s *Snapshot) Has(id uint64) bool {
	_, ok := s.index[id]
	return ok
}

// Neighbors returns the sorted neighbor indices of index i. Must not be modified.
func (s *Snapshot) Neighbors(i int) []int32 {
	return s.targets[s.offsets[i]:s.offsets[i+1]]
}

// NeighborWeights returns the weights parallel to Neighbors(i)
func (s *Snapshot) NeighborWeights(i int) []uint64 {
	return s.weights[s.offsets[i]:s.offsets[i+1]]
}

// Degree returns the neighbor-set size of index i
func (s *Snapshot) Degree(i int) int {
	return s.offsets[i+1] - s.offsets[i]
}

// WeightedDegree returns the sum of edge weights incident to index i (k_i)
func (s *Snapshot) WeightedDegree(i int) uint64 {
	return s.weightedDegree[i]
}

// TotalWeight returns the sum of weights over all directed entries (2m)
func (s *Snapshot) TotalWeight() uint64 {
	return s.totalWeight
}

// HasEdge reports whether indices i and j are adjacent
func (s *Snapshot) HasEdge(i, j int) bool {
	_, found := slices.BinarySearch(s.Neighbors(i), int32(j))
	return found
}

// EdgeWeight returns the weight of the edge between indices i and j
func (s *Snapshot) EdgeWeight(i, j int) (uint64, bool) {
	k, found := slices.BinarySearch(s.Neighbors(i), int32(j))
	if !found {
		return 0, false
	}
	return s.NeighborWeights(i)[k], true
}

// CommonNeighbors returns |N(i) ∩ N(j)| by merging the two sorted lists.
func (s *Snapshot) CommonNeighbors(i, j int) int {
	a, b := s.Neighbors(i), s.Neighbors(j)
	count := 0
	for x, y := 0, 0; x < len(a) && y < len(b); {
		switch {
		case a[x] < b[y]:
			x++
		case a[x] > b[y]:
			y++
		default:
			count++
			x++
			y++
		}
	}
	return count
}
