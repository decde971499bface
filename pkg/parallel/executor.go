package parallel

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

// minChunk is the smallest number of indices worth handing to a worker
const minChunk = 64

// Range is a half-open index interval [Lo, Hi)
type Range struct {
	Lo, Hi int
}

// Executor fans read-only work over node indices out to a WorkerPool and
// combines per-chunk results in chunk order. Chunk boundaries depend only on
// the index count and the worker count, so floating point reductions are
// reproducible for a fixed worker count.
//
// An Executor is not reentrant: a task must not call back into the same
// Executor.
type Executor struct {
	workers int
	pool    *WorkerPool
}

// NewExecutor creates an executor with the given number of workers.
// Zero or negative means runtime.NumCPU().
func NewExecutor(workers int, logger logging.Logger) (*Executor, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := NewWorkerPool(workers, logger)
	if err != nil {
		return nil, err
	}
	return &Executor{workers: workers, pool: pool}, nil
}

// Sequential returns an executor that runs everything on the calling goroutine
func Sequential() *Executor {
	return &Executor{workers: 1}
}

// Workers returns the configured worker count
func (e *Executor) Workers() int {
	if e == nil {
		return 1
	}
	return e.workers
}

// Close releases the worker goroutines
func (e *Executor) Close() {
	if e != nil && e.pool != nil {
		e.pool.Close()
	}
}

// Chunks splits [0, n) into at most Workers() contiguous ranges
func (e *Executor) Chunks(n int) []Range {
	if n <= 0 {
		return nil
	}
	workers := e.Workers()

	// Overflow-safe ceiling division
	chunkSize := int((int64(n) + int64(workers) - 1) / int64(workers))
	if chunkSize < minChunk {
		chunkSize = minChunk
	}

	ranges := make([]Range, 0, (n+chunkSize-1)/chunkSize)
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		ranges = append(ranges, Range{Lo: lo, Hi: hi})
	}
	return ranges
}

// ForEachChunk calls fn once per chunk of [0, n) and waits for all calls.
// A panic inside fn is re-raised on the calling goroutine.
func (e *Executor) ForEachChunk(n int, fn func(chunk int, r Range)) {
	ranges := e.Chunks(n)
	if len(ranges) == 0 {
		return
	}
	if len(ranges) == 1 || e == nil || e.pool == nil {
		for c, r := range ranges {
			fn(c, r)
		}
		return
	}

	var (
		chunkWg  sync.WaitGroup
		panicMu  sync.Mutex
		panicVal any
	)

	for c, r := range ranges {
		chunkWg.Add(1)
		task := func() {
			defer chunkWg.Done()
			defer func() {
				if p := recover(); p != nil {
					panicMu.Lock()
					if panicVal == nil {
						panicVal = p
					}
					panicMu.Unlock()
				}
			}()
			fn(c, r)
		}
		if !e.pool.Submit(task) {
			// Pool already closed, fall back to the caller's goroutine
			task()
		}
	}
	chunkWg.Wait()

	if panicVal != nil {
		panic(fmt.Sprintf("parallel task panicked: %v", panicVal))
	}
}

// ForEach calls fn for every index in [0, n)
func (e *Executor) ForEach(n int, fn func(i int)) {
	e.ForEachChunk(n, func(_ int, r Range) {
		for i := r.Lo; i < r.Hi; i++ {
			fn(i)
		}
	})
}

// MapReduce maps every chunk of [0, n) to a partial result and folds the
// partials left to right in chunk order, starting from zero.
func MapReduce[T any](e *Executor, n int, mapChunk func(r Range) T, reduce func(acc, part T) T, zero T) T {
	ranges := e.Chunks(n)
	partials := make([]T, len(ranges))
	e.ForEachChunk(n, func(c int, r Range) {
		partials[c] = mapChunk(r)
	})

	acc := zero
	for _, part := range partials {
		acc = reduce(acc, part)
	}
	return acc
}

// Number is any integer or floating point type
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum adds fn(i) over [0, n)
func Sum[T Number](e *Executor, n int, fn func(i int) T) T {
	return MapReduce(e, n, func(r Range) T {
		var s T
		for i := r.Lo; i < r.Hi; i++ {
			s += fn(i)
		}
		return s
	}, func(acc, part T) T {
		return acc + part
	}, 0)
}

type maxPartial[T constraints.Ordered] struct {
	value T
	ok    bool
}

// Max returns the maximum of fn(i) over [0, n). ok is false when n <= 0.
func Max[T constraints.Ordered](e *Executor, n int, fn func(i int) T) (T, bool) {
	res := MapReduce(e, n, func(r Range) maxPartial[T] {
		var p maxPartial[T]
		for i := r.Lo; i < r.Hi; i++ {
			if v := fn(i); !p.ok || v > p.value {
				p = maxPartial[T]{value: v, ok: true}
			}
		}
		return p
	}, func(acc, part maxPartial[T]) maxPartial[T] {
		if part.ok && (!acc.ok || part.value > acc.value) {
			return part
		}
		return acc
	}, maxPartial[T]{})
	return res.value, res.ok
}

// Collect concatenates the slices produced per chunk in index order
func Collect[T any](e *Executor, n int, fn func(r Range) []T) []T {
	parts := MapReduce(e, n, func(r Range) [][]T {
		return [][]T{fn(r)}
	}, func(acc, part [][]T) [][]T {
		return append(acc, part...)
	}, nil)

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]T, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
