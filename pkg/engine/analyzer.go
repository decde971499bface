package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/cluso-netanalyzer/pkg/config"
	"github.com/dd0wney/cluso-netanalyzer/pkg/dataset"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
	"github.com/dd0wney/cluso-netanalyzer/pkg/metrics"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
)

var tracer = otel.Tracer("github.com/dd0wney/cluso-netanalyzer/engine")

// settings are the request defaults that may change on config reload
type settings struct {
	steps       int
	probability float64
	bins        int
	maxPasses   int
}

// Analyzer is the entry point for every graph operation. It owns the store,
// the worker pool used inside queries and the random stream used by
// diffusion runs.
//
// The random stream is only consumed while the store lock is held, so runs
// are reproducible for a fixed seed and a fixed sequence of calls.
type Analyzer struct {
	store    *graph.Store
	exec     *parallel.Executor
	rng      *rand.Rand
	resolver *dataset.Resolver
	logger   logging.Logger
	metrics  *metrics.Registry
	settings atomic.Pointer[settings]
}

// Option customizes an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics sets the metrics registry
func WithMetrics(reg *metrics.Registry) Option {
	return func(a *Analyzer) {
		if reg != nil {
			a.metrics = reg
		}
	}
}

// WithResolver sets the dataset resolver used by Load
func WithResolver(r *dataset.Resolver) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.resolver = r
		}
	}
}

// New creates an Analyzer over an empty graph. A nil cfg means defaults.
func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		store:  graph.NewStore(),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logging.Component("engine"))
	if a.metrics == nil {
		a.metrics = metrics.NewRegistry()
	}
	if a.resolver == nil {
		a.resolver = dataset.NewResolver(dataset.S3Options{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		}, a.logger)
	}

	exec, err := parallel.NewExecutor(cfg.Engine.Workers, a.logger)
	if err != nil {
		return nil, err
	}
	a.exec = exec

	if cfg.Engine.Seed != nil {
		a.rng = rand.New(rand.NewPCG(*cfg.Engine.Seed, *cfg.Engine.Seed))
	} else {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	a.ApplyConfig(cfg)
	a.logger.Info("analyzer ready",
		logging.Int("workers", exec.Workers()),
		logging.Bool("seeded", cfg.Engine.Seed != nil))
	return a, nil
}

// ApplyConfig updates request defaults and the log level. Worker count and
// seed only take effect at construction.
func (a *Analyzer) ApplyConfig(cfg *config.Config) {
	a.settings.Store(&settings{
		steps:       cfg.Simulation.Steps,
		probability: cfg.Simulation.Probability,
		bins:        cfg.Simulation.Bins,
		maxPasses:   cfg.Community.MaxPasses,
	})
	if level, ok := logging.LookupLevel(cfg.Log.Level); ok {
		a.logger.SetLevel(level)
	}
}

// DefaultBins returns the configured bucket count for distributions
func (a *Analyzer) DefaultBins() int {
	return a.settings.Load().bins
}

// Metrics returns the registry the analyzer reports to
func (a *Analyzer) Metrics() *metrics.Registry {
	return a.metrics
}

// Resolver returns the dataset resolver used by Load
func (a *Analyzer) Resolver() *dataset.Resolver {
	return a.resolver
}

// Workers returns the number of goroutines used inside a query
func (a *Analyzer) Workers() int {
	return a.exec.Workers()
}

// Close stops the worker pool
func (a *Analyzer) Close() {
	a.exec.Close()
}

// query runs fn under the store lock inside a span, a timed log entry and a
// query metric.
func query[T any](ctx context.Context, a *Analyzer, op string, fn func(*graph.Snapshot) (T, error), attrs ...attribute.KeyValue) (T, error) {
	_, span := tracer.Start(ctx, "Analyzer."+op, trace.WithAttributes(attrs...))
	defer span.End()

	timer := logging.StartTimer(a.logger, op, logging.Query(op))
	out, err := graph.Query(a.store, fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.metrics.RecordQuery(op, metrics.StatusError, a.endFailed(timer, err))
		return out, err
	}

	a.metrics.RecordQuery(op, metrics.StatusSuccess, timer.End())
	return out, nil
}

// reject records a request refused before reaching the store
func (a *Analyzer) reject(ctx context.Context, op string, err error) error {
	_, span := tracer.Start(ctx, "Analyzer."+op)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()

	timer := logging.StartTimer(a.logger, op, logging.Query(op))
	a.metrics.RecordQuery(op, metrics.StatusError, a.endFailed(timer, err))
	return err
}

func (a *Analyzer) endFailed(timer *logging.Timer, err error) time.Duration {
	if errors.Is(err, graph.ErrInvalidArgument) {
		return timer.Fail(logging.WarnLevel, err)
	}
	return timer.Fail(logging.ErrorLevel, err)
}
