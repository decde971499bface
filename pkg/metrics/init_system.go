package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// initSystemMetrics adds the standard go_* and process_* families, which are
// sampled at scrape time, and an uptime gauge in the netanalyzer namespace.
func (r *Registry) initSystemMetrics() {
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	promauto.With(r.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "uptime_seconds",
		Help:      "Seconds since the analyzer was created",
	}, func() float64 {
		return time.Since(r.started).Seconds()
	})
}
