package health

import (
	"time"
)

// NewChecker creates a checker with no probes
func NewChecker() *Checker {
	return &Checker{
		live:    make(map[string]CheckFunc),
		ready:   make(map[string]CheckFunc),
		started: time.Now(),
	}
}

// RegisterLiveness adds a probe to the liveness set
func (c *Checker) RegisterLiveness(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live[name] = fn
}

// RegisterReadiness adds a probe to the readiness set. Readiness also
// includes every liveness probe.
func (c *Checker) RegisterReadiness(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready[name] = fn
}

// Liveness runs the liveness probes
func (c *Checker) Liveness() Response {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run(c.live)
}

// Readiness runs the liveness and readiness probes
func (c *Checker) Readiness() Response {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run(c.live, c.ready)
}

func (c *Checker) run(sets ...map[string]CheckFunc) Response {
	resp := Response{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    make(map[string]Check),
		Uptime:    time.Since(c.started).Seconds(),
	}

	for _, set := range sets {
		for name, fn := range set {
			start := time.Now()
			check := fn()
			check.Name = name
			check.LastChecked = start
			check.Duration = time.Since(start)
			resp.Checks[name] = check

			if check.Status.severity() > resp.Status.severity() {
				resp.Status = check.Status
			}
		}
	}
	return resp
}
