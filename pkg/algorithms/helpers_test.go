package algorithms

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
)

// snapshotOf ingests edges into a fresh store and returns its snapshot.
// The store is never written again, so the snapshot stays valid.
func snapshotOf(t testing.TB, edges ...graph.Edge) *graph.Snapshot {
	t.Helper()
	store := graph.NewStore()
	store.Ingest(edges)
	snap, err := graph.Query(store, func(s *graph.Snapshot) (*graph.Snapshot, error) {
		return s, nil
	})
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	return snap
}

func edge(from, to uint64) graph.Edge {
	return graph.Edge{From: from, To: to}
}

func weighted(from, to, w uint64) graph.Edge {
	return graph.Edge{From: from, To: to, Weight: w}
}

func triangleGraph(t testing.TB) *graph.Snapshot {
	return snapshotOf(t, edge(1, 2), edge(2, 3), edge(3, 1))
}

// twoCliques is two K4s {1..4} and {5..8} joined by the bridge 4-5
func twoCliques(t testing.TB) *graph.Snapshot {
	var edges []graph.Edge
	for _, base := range []uint64{1, 5} {
		for a := base; a < base+4; a++ {
			for b := a + 1; b < base+4; b++ {
				edges = append(edges, edge(a, b))
			}
		}
	}
	edges = append(edges, edge(4, 5))
	return snapshotOf(t, edges...)
}

// randomGraph builds a reproducible sparse graph over node ids [0, nodes)
func randomGraph(t testing.TB, seed uint64, nodes, edges int, maxWeight uint64) *graph.Snapshot {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	list := make([]graph.Edge, 0, edges)
	for k := 0; k < edges; k++ {
		list = append(list, graph.Edge{
			From:   rng.Uint64N(uint64(nodes)),
			To:     rng.Uint64N(uint64(nodes)),
			Weight: 1 + rng.Uint64N(maxWeight),
		})
	}
	return snapshotOf(t, list...)
}

func newExecutor(t testing.TB, workers int) *parallel.Executor {
	t.Helper()
	e, err := parallel.NewExecutor(workers, nil)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
