package algorithms

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
)

const (
	stateIdle int8 = iota
	stateFrontier
	stateSettled
)

// ValidateInfluence checks diffusion parameters before any work is done
func ValidateInfluence(p InfluenceParams) error {
	if p.Steps < 0 {
		return graph.InvalidArgument("simulate_influence", "steps", "must not be negative")
	}
	if math.IsNaN(p.Probability) || p.Probability < 0 || p.Probability > 1 {
		return graph.InvalidArgument("simulate_influence", "probability", "must be within [0, 1]")
	}
	return nil
}

// SimulateInfluence runs an independent cascade for p.Steps rounds.
//
// Each round every frontier node makes one attempt on every neighbor that is
// neither in the frontier nor settled; an attempt succeeds when a uniform draw
// in (0, 1] is <= p.Probability. The frontier is then settled and the
// successful targets form the next frontier, so every node propagates at most
// once. Seeds that are not in the graph are dropped.
//
// Candidate attempts are gathered in parallel, but draws are consumed from rng
// sequentially in ascending (frontier id, neighbor id) order, so a seeded rng
// reproduces a run exactly.
func SimulateInfluence(e *parallel.Executor, s *graph.Snapshot, rng *rand.Rand, p InfluenceParams) (*InfluenceResult, error) {
	if err := ValidateInfluence(p); err != nil {
		return nil, err
	}

	state := make([]int8, s.Len())
	frontier := make([]int32, 0, len(p.Seeds))
	for _, id := range p.Seeds {
		if i, ok := s.Index(id); ok && state[i] == stateIdle {
			state[i] = stateFrontier
			frontier = append(frontier, int32(i))
		}
	}
	slices.Sort(frontier)

	history := make([][]uint64, 0, p.Steps+1)
	history = append(history, idsOf(s, frontier))

	settled := make([]int32, 0)
	for step := 0; step < p.Steps; step++ {
		if len(frontier) == 0 {
			// nothing left to propagate, later rounds repeat the settled set
			last := history[len(history)-1]
			for ; step < p.Steps; step++ {
				history = append(history, last)
			}
			break
		}

		attempts := parallel.Collect(e, len(frontier), func(r parallel.Range) []int32 {
			part := make([]int32, 0)
			for _, u := range frontier[r.Lo:r.Hi] {
				for _, v := range s.Neighbors(int(u)) {
					if state[v] == stateIdle {
						part = append(part, v)
					}
				}
			}
			return part
		})

		next := make([]int32, 0)
		joined := make(map[int32]struct{})
		for _, v := range attempts {
			// draw from (0, 1] so probability 0 never activates and 1 always does
			if 1-rng.Float64() > p.Probability {
				continue
			}
			if _, dup := joined[v]; !dup {
				joined[v] = struct{}{}
				next = append(next, v)
			}
		}

		for _, u := range frontier {
			state[u] = stateSettled
		}
		settled = mergeSorted(settled, frontier)

		slices.Sort(next)
		for _, v := range next {
			state[v] = stateFrontier
		}
		frontier = next

		history = append(history, idsOf(s, settled))
	}

	influenced := mergeSorted(slices.Clone(settled), frontier)
	return &InfluenceResult{
		History:    history,
		Final:      history[len(history)-1],
		Influenced: idsOf(s, influenced),
	}, nil
}

// BestStartingNodes picks up to n pairwise non-adjacent nodes, preferring
// higher degree and, among equal degrees, smaller ids.
func BestStartingNodes(s *graph.Snapshot, n int) ([]uint64, error) {
	if n < 0 {
		return nil, graph.InvalidArgument("best_starting_nodes", "n", "must not be negative")
	}

	order := make([]int, s.Len())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return s.Degree(b) - s.Degree(a)
	})

	blocked := make([]bool, s.Len())
	picked := make([]uint64, 0, min(n, s.Len()))
	for _, i := range order {
		if len(picked) >= n {
			break
		}
		if blocked[i] {
			continue
		}
		picked = append(picked, s.ID(i))
		blocked[i] = true
		for _, j := range s.Neighbors(i) {
			blocked[j] = true
		}
	}
	return picked, nil
}

func idsOf(s *graph.Snapshot, indices []int32) []uint64 {
	ids := make([]uint64, len(indices))
	for k, i := range indices {
		ids[k] = s.ID(int(i))
	}
	return ids
}

// mergeSorted merges two ascending, disjoint index lists
func mergeSorted(a, b []int32) []int32 {
	out := make([]int32, 0, len(a)+len(b))
	x, y := 0, 0
	for x < len(a) && y < len(b) {
		if a[x] < b[y] {
			out = append(out, a[x])
			x++
		} else {
			out = append(out, b[y])
			y++
		}
	}
	out = append(out, a[x:]...)
	return append(out, b[y:]...)
}
