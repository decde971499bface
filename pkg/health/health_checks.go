package health

import (
	"runtime"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

// GraphCheck reports the size of the loaded graph. An empty graph is
// unhealthy unless allowEmpty is set, so a server started without datasets
// stays out of rotation until something is ingested.
func GraphCheck(stats func() graph.Statistics, allowEmpty bool) CheckFunc {
	return func() Check {
		s := stats()
		check := Check{
			Status: StatusHealthy,
			Details: map[string]any{
				"nodes":      s.NodeCount,
				"edges":      s.EdgeCount,
				"ingestions": s.Ingestions,
			},
		}

		switch {
		case s.NodeCount > 0:
			check.Message = "graph loaded"
		case allowEmpty:
			check.Message = "graph empty"
		default:
			check.Status = StatusUnhealthy
			check.Message = "no graph loaded"
		}
		return check
	}
}

// WorkersCheck reports the query worker count
func WorkersCheck(workers func() int) CheckFunc {
	return func() Check {
		n := workers()
		check := Check{
			Status:  StatusHealthy,
			Details: map[string]any{"workers": n},
		}
		if n < 1 {
			check.Status = StatusUnhealthy
			check.Message = "no query workers"
		}
		return check
	}
}

// MemoryCheck reports heap usage and degrades above limitBytes. A zero limit
// disables the threshold.
func MemoryCheck(limitBytes uint64) CheckFunc {
	return func() Check {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		check := Check{
			Status: StatusHealthy,
			Details: map[string]any{
				"heap_alloc_bytes": m.HeapAlloc,
				"sys_bytes":        m.Sys,
				"goroutines":       runtime.NumGoroutine(),
			},
		}
		if limitBytes > 0 && m.HeapAlloc > limitBytes {
			check.Status = StatusDegraded
			check.Message = "heap above limit"
		}
		return check
	}
}
