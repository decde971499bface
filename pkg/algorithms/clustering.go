package algorithms

import (
	"maps"
	"math"
	"slices"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
)

// LocalClusteringCoefficient returns the fraction of neighbor pairs of node id
// that are adjacent. Absent nodes and nodes with degree below 2 yield 0.
func LocalClusteringCoefficient(s *graph.Snapshot, id uint64) float64 {
	i, ok := s.Index(id)
	if !ok {
		return 0
	}
	return localCoefficient(s, i)
}

// AverageClusteringCoefficient is the mean local coefficient over all nodes,
// degree < 2 nodes included as zeros
func AverageClusteringCoefficient(e *parallel.Executor, s *graph.Snapshot) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	total := parallel.Sum(e, n, func(i int) float64 { return localCoefficient(s, i) })
	return total / float64(n)
}

// AllClusteringCoefficients returns every node's local coefficient as a bag.
// Values are sorted ascending and carry no node identity.
func AllClusteringCoefficients(e *parallel.Executor, s *graph.Snapshot) []float64 {
	values := parallel.Collect(e, s.Len(), func(r parallel.Range) []float64 {
		part := make([]float64, 0, r.Hi-r.Lo)
		for i := r.Lo; i < r.Hi; i++ {
			part = append(part, localCoefficient(s, i))
		}
		return part
	})
	slices.Sort(values)
	return values
}

// ClusteringCoefficientDistribution splits the observed coefficient range
// into bins equal-width buckets. A degenerate range puts every value in the
// first bucket. An empty graph yields no buckets.
func ClusteringCoefficientDistribution(e *parallel.Executor, s *graph.Snapshot, bins int) ([]Bucket, error) {
	if bins <= 0 {
		return nil, graph.InvalidArgument("coefficient_distribution", "bins", "must be at least 1")
	}
	return Distribution(AllClusteringCoefficients(e, s), bins), nil
}

// Distribution buckets values into bins equal-width intervals over [min, max].
// The maximum lands in the last bucket. bins must be positive.
func Distribution(values []float64, bins int) []Bucket {
	if len(values) == 0 || bins <= 0 {
		return []Bucket{}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	width := (hi - lo) / float64(bins)
	buckets := make([]Bucket, bins)
	for b := range buckets {
		buckets[b].Lower = lo + float64(b)*width
		buckets[b].Upper = lo + float64(b+1)*width
	}
	buckets[bins-1].Upper = hi

	for _, v := range values {
		idx := 0
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		buckets[idx].Count++
	}
	return buckets
}

// ClusteringEffect averages, over all nodes u, the sum over neighbors v of
// |N(v) ∩ N(u)|. Unlike the coefficient it is not normalized.
func ClusteringEffect(e *parallel.Executor, s *graph.Snapshot) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	total := parallel.Sum(e, n, func(i int) int { return clusteringEffect(s, i) })
	return float64(total) / float64(n)
}

// ClusteringEffectDistribution counts nodes per clustering-effect value,
// sorted by effect ascending
func ClusteringEffectDistribution(e *parallel.Executor, s *graph.Snapshot) []EffectCount {
	hist := histogram(e, s.Len(), func(i int) int { return clusteringEffect(s, i) })

	out := make([]EffectCount, 0, len(hist))
	for _, effect := range slices.Sorted(maps.Keys(hist)) {
		out = append(out, EffectCount{Effect: effect, Count: hist[effect]})
	}
	return out
}

type coefficientSum struct {
	sum   float64
	nodes int
}

// ClusteringEffectByDegree averages local coefficients per degree, sorted by
// degree ascending
func ClusteringEffectByDegree(e *parallel.Executor, s *graph.Snapshot) []DegreeCoefficient {
	groups := parallel.MapReduce(e, s.Len(), func(r parallel.Range) map[int]coefficientSum {
		part := make(map[int]coefficientSum)
		for i := r.Lo; i < r.Hi; i++ {
			g := part[s.Degree(i)]
			g.sum += localCoefficient(s, i)
			g.nodes++
			part[s.Degree(i)] = g
		}
		return part
	}, func(acc, part map[int]coefficientSum) map[int]coefficientSum {
		for d, g := range part {
			a := acc[d]
			a.sum += g.sum
			a.nodes += g.nodes
			acc[d] = a
		}
		return acc
	}, make(map[int]coefficientSum))

	out := make([]DegreeCoefficient, 0, len(groups))
	for _, degree := range slices.Sorted(maps.Keys(groups)) {
		g := groups[degree]
		out = append(out, DegreeCoefficient{Degree: degree, Coefficient: g.sum / float64(g.nodes)})
	}
	return out
}
