package parallel

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

// MaxWorkers caps the goroutines a single pool may start
const MaxWorkers = 4096

// ErrTooManyWorkers is returned by NewWorkerPool for counts above MaxWorkers
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// WorkerPool keeps a fixed set of goroutines alive for the lifetime of an
// analyzer so queries do not pay goroutine start-up per chunk.
type WorkerPool struct {
	tasks  chan func()
	size   int
	done   sync.WaitGroup
	logger logging.Logger

	// gate keeps Submit from sending on a closed channel
	gate   sync.RWMutex
	closed bool

	panics atomic.Int64
}

// NewWorkerPool starts workers goroutines. Counts below one start a single
// worker.
func NewWorkerPool(workers int, logger logging.Logger) (*WorkerPool, error) {
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyWorkers, workers, MaxWorkers)
	}
	workers = max(workers, 1)
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	wp := &WorkerPool{
		tasks:  make(chan func(), workers),
		size:   workers,
		logger: logger.With(logging.Component("parallel")),
	}
	wp.done.Add(workers)
	for id := range workers {
		go wp.loop(id)
	}
	return wp, nil
}

func (wp *WorkerPool) Workers() int { return wp.size }

// Panics reports how many tasks have panicked inside a worker
func (wp *WorkerPool) Panics() int64 { return wp.panics.Load() }

func (wp *WorkerPool) loop(id int) {
	defer wp.done.Done()
	for task := range wp.tasks {
		wp.safely(id, task)
	}
}

func (wp *WorkerPool) safely(id int, task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.panics.Add(1)
			wp.logger.Error("task panicked", logging.Int("worker", id), logging.Any("panic", fmt.Sprint(r)))
		}
	}()
	task()
}

// Submit queues task and reports whether the pool accepted it. It blocks
// while every worker is busy and the queue is full.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.gate.RLock()
	defer wp.gate.RUnlock()
	if wp.closed {
		return false
	}
	wp.tasks <- task
	return true
}

// Close rejects further tasks, drains the queue and waits for the workers.
// Calling it again is a no-op apart from the wait.
func (wp *WorkerPool) Close() {
	wp.gate.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.tasks)
	}
	wp.gate.Unlock()
	wp.done.Wait()
}
