package algorithms

import (
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
)

// AverageCommonNeighbors averages |N(a) ∩ N(b)| over all n² ordered pairs,
// self pairs included.
//
// Every node w is a common neighbor of exactly deg(w)² ordered pairs, so the
// pair sum equals Σ deg(w)² and the average needs no pairwise scan.
func AverageCommonNeighbors(e *parallel.Executor, s *graph.Snapshot) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	total := parallel.Sum(e, n, func(i int) float64 {
		d := float64(s.Degree(i))
		return d * d
	})
	return total / (float64(n) * float64(n))
}

// MaxCommonNeighbors returns the largest |N(a) ∩ N(b)| over pairs a <= b,
// self pairs included. Pairs without a common neighbor are never visited:
// each a counts its two-hop neighbors b > a through a shared scratch row.
func MaxCommonNeighbors(e *parallel.Executor, s *graph.Snapshot) int {
	n := s.Len()
	best := parallel.MapReduce(e, n, func(r parallel.Range) int {
		counts := make([]int, n)
		touched := make([]int32, 0)
		chunkMax := 0

		for a := r.Lo; a < r.Hi; a++ {
			// self pair
			if d := s.Degree(a); d > chunkMax {
				chunkMax = d
			}
			for _, w := range s.Neighbors(a) {
				for _, b := range s.Neighbors(int(w)) {
					if int(b) <= a {
						continue
					}
					if counts[b] == 0 {
						touched = append(touched, b)
					}
					counts[b]++
				}
			}
			for _, b := range touched {
				if counts[b] > chunkMax {
					chunkMax = counts[b]
				}
				counts[b] = 0
			}
			touched = touched[:0]
		}
		return chunkMax
	}, func(acc, part int) int {
		return max(acc, part)
	}, 0)
	return best
}
