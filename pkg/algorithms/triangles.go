package algorithms

import "github.com/dd0wney/cluso-netanalyzer/pkg/graph"

// clusteringEffect returns Σ_{v ∈ N(i)} |N(v) ∩ N(i)| for index i.
// Every triangle through i is seen from both of its other corners, so the
// value is twice the triangle count.
func clusteringEffect(s *graph.Snapshot, i int) int {
	effect := 0
	for _, v := range s.Neighbors(i) {
		effect += s.CommonNeighbors(i, int(v))
	}
	return effect
}

// triangles returns the number of neighbor pairs of i that are themselves adjacent
func triangles(s *graph.Snapshot, i int) int {
	return clusteringEffect(s, i) / 2
}

// localCoefficient is 2T / (d(d-1)), 0 for degree below 2
func localCoefficient(s *graph.Snapshot, i int) float64 {
	d := s.Degree(i)
	if d < 2 {
		return 0
	}
	return 2 * float64(triangles(s, i)) / (float64(d) * float64(d-1))
}

// Triangles returns the number of triangles through node id, 0 when absent
func Triangles(s *graph.Snapshot, id uint64) int {
	i, ok := s.Index(id)
	if !ok {
		return 0
	}
	return triangles(s, i)
}
