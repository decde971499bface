package algorithms

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
)

// TestTriangleGraph checks every metric on {1-2, 2-3, 3-1}
func TestTriangleGraph(t *testing.T) {
	s := triangleGraph(t)
	e := parallel.Sequential()

	if s.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", s.EdgeCount())
	}
	for _, id := range []uint64{1, 2, 3} {
		i, _ := s.Index(id)
		if s.Degree(i) != 2 {
			t.Errorf("degree(%d) = %d, want 2", id, s.Degree(i))
		}
		if got := LocalClusteringCoefficient(s, id); got != 1.0 {
			t.Errorf("coefficient(%d) = %v, want 1.0", id, got)
		}
		if got := Triangles(s, id); got != 1 {
			t.Errorf("Triangles(%d) = %d, want 1", id, got)
		}
	}

	if got := AverageDegree(e, s); got != 2 {
		t.Errorf("AverageDegree() = %v, want 2", got)
	}
	if got := AverageClusteringCoefficient(e, s); got != 1 {
		t.Errorf("AverageClusteringCoefficient() = %v, want 1", got)
	}
	// each node sees one common neighbor through each of its two neighbors
	if got := ClusteringEffect(e, s); got != 2 {
		t.Errorf("ClusteringEffect() = %v, want 2", got)
	}
	// 3 self pairs of 2 plus 6 ordered distinct pairs of 1, over 9 pairs
	if got := AverageCommonNeighbors(e, s); !approxEqual(got, 12.0/9.0) {
		t.Errorf("AverageCommonNeighbors() = %v, want %v", got, 12.0/9.0)
	}
	if got := MaxCommonNeighbors(e, s); got != 2 {
		t.Errorf("MaxCommonNeighbors() = %d, want 2", got)
	}
}

func TestDegreeStatistics_Star(t *testing.T) {
	// hub 10 with leaves 11..14, plus a separate edge 20-21
	s := snapshotOf(t, edge(10, 11), edge(10, 12), edge(10, 13), edge(10, 14), edge(20, 21))
	e := parallel.Sequential()

	if got := MaxDegree(e, s); got != 4 {
		t.Errorf("MaxDegree() = %d, want 4", got)
	}
	if got := AverageDegree(e, s); !approxEqual(got, 10.0/7.0) {
		t.Errorf("AverageDegree() = %v, want %v", got, 10.0/7.0)
	}

	want := []DegreeCount{{Degree: 1, Count: 6}, {Degree: 4, Count: 1}}
	got := DegreeDistribution(e, s)
	if len(got) != len(want) {
		t.Fatalf("DegreeDistribution() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DegreeDistribution()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEmptyGraph(t *testing.T) {
	s := snapshotOf(t)
	e := parallel.Sequential()

	if AverageDegree(e, s) != 0 || MaxDegree(e, s) != 0 {
		t.Error("degree statistics of an empty graph should be 0")
	}
	if AverageClusteringCoefficient(e, s) != 0 || ClusteringEffect(e, s) != 0 {
		t.Error("clustering statistics of an empty graph should be 0")
	}
	if AverageCommonNeighbors(e, s) != 0 || MaxCommonNeighbors(e, s) != 0 {
		t.Error("common neighbor statistics of an empty graph should be 0")
	}
	if len(DegreeDistribution(e, s)) != 0 || len(AllClusteringCoefficients(e, s)) != 0 {
		t.Error("distributions of an empty graph should be empty")
	}
	buckets, err := ClusteringCoefficientDistribution(e, s, 5)
	if err != nil || len(buckets) != 0 {
		t.Errorf("ClusteringCoefficientDistribution() = %v, %v, want empty", buckets, err)
	}
	if LocalClusteringCoefficient(s, 1) != 0 {
		t.Error("coefficient of an absent node should be 0")
	}
}

func TestClusteringCoefficientDistribution(t *testing.T) {
	e := parallel.Sequential()

	t.Run("ZeroBins", func(t *testing.T) {
		_, err := ClusteringCoefficientDistribution(e, triangleGraph(t), 0)
		if !errors.Is(err, graph.ErrInvalidArgument) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})

	t.Run("DegenerateRange", func(t *testing.T) {
		buckets, err := ClusteringCoefficientDistribution(e, triangleGraph(t), 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(buckets) != 4 || buckets[0].Count != 3 {
			t.Errorf("buckets = %+v, want all 3 values in bucket 0", buckets)
		}
	})

	t.Run("MaximumInLastBucket", func(t *testing.T) {
		buckets := Distribution([]float64{0, 0.25, 0.5, 1, 1}, 4)
		counts := []int{1, 1, 1, 2}
		for i, c := range counts {
			if buckets[i].Count != c {
				t.Errorf("bucket %d count = %d, want %d", i, buckets[i].Count, c)
			}
		}
		if buckets[3].Upper != 1 || buckets[0].Lower != 0 {
			t.Errorf("bounds = [%v, %v], want [0, 1]", buckets[0].Lower, buckets[3].Upper)
		}
	})
}

func TestClusteringEffectByDegree(t *testing.T) {
	// triangle 1-2-3 with a pendant 4 on node 3
	s := snapshotOf(t, edge(1, 2), edge(2, 3), edge(3, 1), edge(3, 4))
	e := parallel.Sequential()

	got := ClusteringEffectByDegree(e, s)
	want := []DegreeCoefficient{
		{Degree: 1, Coefficient: 0},
		{Degree: 2, Coefficient: 1},
		{Degree: 3, Coefficient: 1.0 / 3.0},
	}
	if len(got) != len(want) {
		t.Fatalf("ClusteringEffectByDegree() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Degree != want[i].Degree || !approxEqual(got[i].Coefficient, want[i].Coefficient) {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	effects := ClusteringEffectDistribution(e, s)
	wantEffects := []EffectCount{{Effect: 0, Count: 1}, {Effect: 2, Count: 3}}
	if len(effects) != len(wantEffects) {
		t.Fatalf("ClusteringEffectDistribution() = %v, want %v", effects, wantEffects)
	}
	for i := range wantEffects {
		if effects[i] != wantEffects[i] {
			t.Errorf("row %d = %+v, want %+v", i, effects[i], wantEffects[i])
		}
	}
}

// TestMetricProperties checks invariants that hold for any graph, with
// parallel results matching sequential ones
func TestMetricProperties(t *testing.T) {
	seq := parallel.Sequential()
	par := newExecutor(t, 4)

	for seed := uint64(1); seed <= 5; seed++ {
		s := randomGraph(t, seed, 300, 900, 1)

		if MaxDegree(par, s) < int(AverageDegree(par, s)) {
			t.Errorf("seed %d: max degree below average", seed)
		}

		for _, c := range AllClusteringCoefficients(par, s) {
			if c < 0 || c > 1 {
				t.Fatalf("seed %d: coefficient %v out of [0,1]", seed, c)
			}
		}
		for i := 0; i < s.Len(); i++ {
			if s.Degree(i) < 2 && LocalClusteringCoefficient(s, s.ID(i)) != 0 {
				t.Fatalf("seed %d: node %d has degree < 2 but non-zero coefficient", seed, s.ID(i))
			}
		}

		if a, b := AverageClusteringCoefficient(seq, s), AverageClusteringCoefficient(par, s); !approxEqual(a, b) {
			t.Errorf("seed %d: sequential %v != parallel %v", seed, a, b)
		}
		if a, b := MaxCommonNeighbors(seq, s), MaxCommonNeighbors(par, s); a != b {
			t.Errorf("seed %d: sequential max common %d != parallel %d", seed, a, b)
		}
	}
}

// TestCommonNeighbors_BruteForce compares the fast forms with an O(n²) scan
func TestCommonNeighbors_BruteForce(t *testing.T) {
	e := newExecutor(t, 3)

	for seed := uint64(10); seed < 14; seed++ {
		s := randomGraph(t, seed, 60, 150, 1)
		n := s.Len()

		total, best := 0, 0
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				c := s.CommonNeighbors(a, b)
				total += c
				if a <= b && c > best {
					best = c
				}
			}
		}

		wantAvg := float64(total) / float64(n*n)
		if got := AverageCommonNeighbors(e, s); !approxEqual(got, wantAvg) {
			t.Errorf("seed %d: AverageCommonNeighbors() = %v, want %v", seed, got, wantAvg)
		}
		if got := MaxCommonNeighbors(e, s); got != best {
			t.Errorf("seed %d: MaxCommonNeighbors() = %d, want %d", seed, got, best)
		}
	}
}
