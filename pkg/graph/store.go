package graph

import (
	"context"
	"sync"
)

// EdgeSource produces a complete batch of edge records. Implementations read
// their whole input before returning so a failing source never leaves a
// partially applied batch behind.
type EdgeSource interface {
	Name() string
	ReadEdges(ctx context.Context) ([]Edge, error)
}

// Store is the in-memory weighted undirected graph. It is the single source
// of truth for every analytic query.
//
// All access goes through one exclusive lock: ingestion and queries are
// serialized, so a query never observes a partially ingested graph. Queries
// run against a compiled Snapshot that is rebuilt lazily after ingestion.
type Store struct {
	mu sync.Mutex

	adj       map[uint64]map[uint64]uint64 // node -> neighbor -> weight
	degreeSum uint64                       // number of directed adjacency entries
	weightSum uint64                       // sum of weights over directed entries

	snapshot   *Snapshot // nil when the adjacency changed since the last compile
	ingestions uint64
}

// NewStore creates an empty graph store
func NewStore() *Store {
	return &Store{
		adj: make(map[uint64]map[uint64]uint64),
	}
}

// Ingest inserts every edge in both directions. A directed entry that already
// exists is left untouched (first write wins). Self-loops are dropped.
func (s *Store) Ingest(edges []Edge) IngestResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ingestLocked(edges)
}

// IngestBatches applies several batches under a single lock acquisition, so
// queries see either none or all of them. Results are returned per batch.
func (s *Store) IngestBatches(batches [][]Edge) []IngestResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]IngestResult, len(batches))
	for i, edges := range batches {
		results[i] = s.ingestLocked(edges)
	}
	return results
}

// IngestFrom reads the whole source and then applies it atomically. If the
// source cannot be read the store is not modified and the error wraps
// ErrIngestion.
func (s *Store) IngestFrom(ctx context.Context, src EdgeSource) (IngestResult, error) {
	edges, err := src.ReadEdges(ctx)
	if err != nil {
		return IngestResult{}, IngestionFailure(src.Name(), err)
	}
	return s.Ingest(edges), nil
}

func (s *Store) ingestLocked(edges []Edge) IngestResult {
	var res IngestResult
	for _, e := range edges {
		res.Records++
		if e.From == e.To {
			res.SelfLoops++
			continue
		}

		w := e.Weight
		if w == 0 {
			w = DefaultWeight
		}

		forward := s.insert(e.From, e.To, w, &res)
		backward := s.insert(e.To, e.From, w, &res)
		if forward || backward {
			res.Inserted++
		} else {
			res.Duplicates++
		}
	}

	if res.Inserted > 0 || res.NewNodes > 0 {
		s.snapshot = nil
	}
	s.ingestions++
	return res
}

// insert adds the directed entry u -> v unless it already exists.
func (s *Store) insert(u, v, w uint64, res *IngestResult) bool {
	neighbors, ok := s.adj[u]
	if !ok {
		neighbors = make(map[uint64]uint64)
		s.adj[u] = neighbors
		res.NewNodes++
	}
	if _, exists := neighbors[v]; exists {
		return false
	}
	neighbors[v] = w
	s.degreeSum++
	s.weightSum += w
	return true
}

// NodeCount returns the number of nodes
func (s *Store) NodeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.adj)
}

// EdgeCount returns the number of undirected edges (sum of degrees / 2)
func (s *Store) EdgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.degreeSum / 2)
}

// Statistics returns current store statistics
func (s *Store) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Statistics{
		NodeCount:   uint64(len(s.adj)),
		EdgeCount:   s.degreeSum / 2,
		TotalWeight: s.weightSum / 2,
		Ingestions:  s.ingestions,
	}
}

// View runs fn against the current snapshot while holding the store lock.
// The snapshot must not be retained after fn returns.
func (s *Store) View(fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.snapshotLocked())
}

func (s *Store) snapshotLocked() *Snapshot {
	if s.snapshot == nil {
		s.snapshot = compile(s.adj)
	}
	return s.snapshot
}

// Query runs fn under the store lock and returns its result.
func Query[T any](s *Store, fn func(*Snapshot) (T, error)) (T, error) {
	var out T
	err := s.View(func(snap *Snapshot) error {
		var err error
		out, err = fn(snap)
		return err
	})
	return out, err
}
