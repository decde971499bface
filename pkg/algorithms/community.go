package algorithms

import (
	"maps"
	"slices"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
)

// partition tracks community membership by node index. A community is named
// by the index of the node whose singleton it started as, so the smallest
// community id is also the smallest community index.
type partition struct {
	s    *graph.Snapshot
	comm []int32  // node index -> community index
	tot  []uint64 // community index -> Σ weighted degree of members
}

func newPartition(s *graph.Snapshot) *partition {
	n := s.Len()
	p := &partition{
		s:    s,
		comm: make([]int32, n),
		tot:  make([]uint64, n),
	}
	for i := 0; i < n; i++ {
		p.comm[i] = int32(i)
		p.tot[i] = s.WeightedDegree(i)
	}
	return p
}

// assign seeds the partition from a node -> label map. Labels must be node ids.
func (p *partition) assign(labels map[uint64]uint64) error {
	for node, label := range labels {
		i, ok := p.s.Index(node)
		if !ok {
			continue
		}
		c, ok := p.s.Index(label)
		if !ok {
			return graph.NewError("detect_communities").
				Node(label).
				Cause(graph.ErrInvalidArgument).
				Err()
		}
		p.tot[p.comm[i]] -= p.s.WeightedDegree(i)
		p.comm[i] = int32(c)
		p.tot[c] += p.s.WeightedDegree(i)
	}
	return nil
}

// labelsFrom converts a node -> label map into dense community indices for
// every node. Unlabelled nodes keep their own id as label; labels need not be
// node ids.
func labelsFrom(s *graph.Snapshot, assignment map[uint64]uint64) []int32 {
	dense := make(map[uint64]int32)
	comm := make([]int32, s.Len())
	for i := range comm {
		label, ok := assignment[s.ID(i)]
		if !ok {
			label = s.ID(i)
		}
		c, seen := dense[label]
		if !seen {
			c = int32(len(dense))
			dense[label] = c
		}
		comm[i] = c
	}
	return comm
}

// modularity evaluates Q for dense community indices.
//
//	Q = (1/2m) Σ_ij (A_ij − k_i k_j / 2m) δ(c_i, c_j)
//	  = Σ_c [ in_c / 2m − (tot_c / 2m)² ]
//
// in_c counts both directions of every internal edge. The internal sum runs in
// parallel over nodes; community totals are folded sequentially in index order.
func modularity(e *parallel.Executor, s *graph.Snapshot, comm []int32) float64 {
	twoM := float64(s.TotalWeight())
	if twoM == 0 {
		return 0
	}

	internal := parallel.Sum(e, s.Len(), func(i int) uint64 {
		var w uint64
		weights := s.NeighborWeights(i)
		for k, j := range s.Neighbors(i) {
			if comm[j] == comm[i] {
				w += weights[k]
			}
		}
		return w
	})

	tot := make([]float64, len(comm))
	for i, c := range comm {
		tot[c] += float64(s.WeightedDegree(i))
	}
	var expected float64
	for _, t := range tot {
		expected += t * t
	}

	return float64(internal)/twoM - expected/(twoM*twoM)
}

// Modularity returns Q for a node -> community assignment. Nodes missing from
// the assignment are treated as singletons. An edgeless graph scores 0.
func Modularity(e *parallel.Executor, s *graph.Snapshot, assignment map[uint64]uint64) float64 {
	return modularity(e, s, labelsFrom(s, assignment))
}

// moveGain returns 2m² · ΔQ for moving node i from its community C into D:
//
//	ΔQ = [k_i,in(D) − k_i,in(C∖i)]/m − k_i·[Σtot(D) − (Σtot(C) − k_i)]/(2m²)
//
// Scaling by 2m² keeps every term an integer, so comparisons between
// candidates are exact while the weights stay below 2^53.
func moveGain(twoM, ki, kinC, kinD, totC, totD uint64) float64 {
	return float64(twoM)*(float64(kinD)-float64(kinC)) -
		float64(ki)*(float64(totD)-float64(totC)+float64(ki))
}

// gainToDelta converts a scaled gain back to ΔQ
func gainToDelta(gain float64, twoM uint64) float64 {
	w := float64(twoM)
	return gain / (w * w / 2)
}

// sweep visits every node in ascending id order and moves it to the
// neighboring community with the largest strictly positive gain. Moves are
// applied immediately. It returns the number of moves made.
func (p *partition) sweep() int {
	s := p.s
	twoM := s.TotalWeight()
	kin := make([]uint64, s.Len()) // community index -> weight from the current node
	candidates := make([]int32, 0)
	moves := 0

	for i := 0; i < s.Len(); i++ {
		own := p.comm[i]
		weights := s.NeighborWeights(i)
		for k, j := range s.Neighbors(i) {
			c := p.comm[j]
			if kin[c] == 0 && c != own {
				candidates = append(candidates, c)
			}
			kin[c] += weights[k]
		}
		slices.Sort(candidates)

		ki := s.WeightedDegree(i)
		best, bestGain := own, 0.0
		for _, d := range candidates {
			gain := moveGain(twoM, ki, kin[own], kin[d], p.tot[own], p.tot[d])
			if gain > bestGain {
				best, bestGain = d, gain
			}
		}

		if best != own {
			p.tot[own] -= ki
			p.tot[best] += ki
			p.comm[i] = best
			moves++
		}

		kin[own] = 0
		for _, c := range candidates {
			kin[c] = 0
		}
		candidates = candidates[:0]
	}
	return moves
}

func (p *partition) result(q float64) *CommunityResult {
	s := p.s
	assignment := make(map[uint64]uint64, s.Len())
	groups := make(map[uint64][]uint64)
	for i, c := range p.comm {
		id, label := s.ID(i), s.ID(int(c))
		assignment[id] = label
		groups[label] = append(groups[label], id)
	}

	communities := make([]Community, 0, len(groups))
	for _, label := range slices.Sorted(maps.Keys(groups)) {
		// members were appended in ascending id order
		communities = append(communities, Community{ID: label, Members: groups[label]})
	}

	return &CommunityResult{
		Assignment:  assignment,
		Communities: communities,
		Modularity:  q,
	}
}

// DetectCommunities runs single-level greedy modularity optimization (the
// first phase of Louvain, without aggregation).
//
// Every node starts in its own community. Each pass visits nodes in ascending
// id order and moves a node to the neighboring community with the largest
// strictly positive modularity gain, ties going to the smallest community id.
// Global modularity is recomputed after each pass. Detection stops when a pass
// makes no move, when modularity fails to increase, or after MaxPasses passes.
func DetectCommunities(e *parallel.Executor, s *graph.Snapshot, opts CommunityOptions) (*CommunityResult, error) {
	maxPasses := opts.MaxPasses
	if maxPasses == 0 {
		maxPasses = DefaultMaxPasses
	}
	if maxPasses < 0 {
		return nil, graph.InvalidArgument("detect_communities", "max_passes", "must not be negative")
	}

	p := newPartition(s)
	if err := p.assign(opts.Initial); err != nil {
		return nil, err
	}

	q := modularity(e, s, p.comm)
	passes, moves := 0, 0
	if s.TotalWeight() > 0 {
		for passes < maxPasses {
			moved := p.sweep()
			passes++
			moves += moved
			if moved == 0 {
				break
			}
			next := modularity(e, s, p.comm)
			improved := next > q
			q = next
			if !improved {
				break
			}
		}
	}

	res := p.result(q)
	res.Passes = passes
	res.Moves = moves
	return res, nil
}

// MoveDelta returns the modularity change of moving node into the community
// labelled target under assignment. It is 0 when node is absent or already in
// target.
func MoveDelta(s *graph.Snapshot, assignment map[uint64]uint64, node, target uint64) float64 {
	i, ok := s.Index(node)
	twoM := s.TotalWeight()
	if !ok || twoM == 0 {
		return 0
	}

	label := func(idx int) uint64 {
		if l, ok := assignment[s.ID(idx)]; ok {
			return l
		}
		return s.ID(idx)
	}
	own := label(i)
	if own == target {
		return 0
	}

	var kinC, kinD, totC, totD uint64
	weights := s.NeighborWeights(i)
	for k, j := range s.Neighbors(i) {
		switch label(int(j)) {
		case own:
			kinC += weights[k]
		case target:
			kinD += weights[k]
		}
	}
	for j := 0; j < s.Len(); j++ {
		switch label(j) {
		case own:
			totC += s.WeightedDegree(j)
		case target:
			totD += s.WeightedDegree(j)
		}
	}

	gain := moveGain(twoM, s.WeightedDegree(i), kinC, kinD, totC, totD)
	return gainToDelta(gain, twoM)
}

// MergeDelta returns the modularity change of merging the communities
// labelled a and b:
//
//	ΔQ = e_ab/m − Σtot(a)·Σtot(b)/(2m²)
//
// where e_ab is the weight of edges running between the two. Communities with
// no edge between them never gain from a merge.
func MergeDelta(s *graph.Snapshot, assignment map[uint64]uint64, a, b uint64) float64 {
	twoM := float64(s.TotalWeight())
	if twoM == 0 || a == b {
		return 0
	}

	comm := make([]uint64, s.Len())
	for i := range comm {
		if l, ok := assignment[s.ID(i)]; ok {
			comm[i] = l
		} else {
			comm[i] = s.ID(i)
		}
	}

	var between, totA, totB float64
	for i, c := range comm {
		switch c {
		case a:
			totA += float64(s.WeightedDegree(i))
			weights := s.NeighborWeights(i)
			for k, j := range s.Neighbors(i) {
				if comm[j] == b {
					between += float64(weights[k])
				}
			}
		case b:
			totB += float64(s.WeightedDegree(i))
		}
	}

	m := twoM / 2
	return between/m - totA*totB/(2*m*m)
}
