package algorithms

import (
	"maps"
	"slices"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
)

// AverageDegree returns the mean neighbor-set size, or 0 for an empty graph
func AverageDegree(e *parallel.Executor, s *graph.Snapshot) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	total := parallel.Sum(e, n, func(i int) int { return s.Degree(i) })
	return float64(total) / float64(n)
}

// MaxDegree returns the largest neighbor-set size, or 0 for an empty graph
func MaxDegree(e *parallel.Executor, s *graph.Snapshot) int {
	maxDeg, _ := parallel.Max(e, s.Len(), func(i int) int { return s.Degree(i) })
	return maxDeg
}

// DegreeDistribution returns degree -> node count, sorted by degree ascending
func DegreeDistribution(e *parallel.Executor, s *graph.Snapshot) []DegreeCount {
	hist := histogram(e, s.Len(), s.Degree)

	out := make([]DegreeCount, 0, len(hist))
	for _, degree := range slices.Sorted(maps.Keys(hist)) {
		out = append(out, DegreeCount{Degree: degree, Count: hist[degree]})
	}
	return out
}

// histogram counts key(i) over [0, n) with per-chunk maps merged in chunk order
func histogram(e *parallel.Executor, n int, key func(i int) int) map[int]int {
	return parallel.MapReduce(e, n, func(r parallel.Range) map[int]int {
		part := make(map[int]int)
		for i := r.Lo; i < r.Hi; i++ {
			part[key(i)]++
		}
		return part
	}, func(acc, part map[int]int) map[int]int {
		for k, v := range part {
			acc[k] += v
		}
		return acc
	}, make(map[int]int))
}
