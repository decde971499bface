package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/dd0wney/cluso-netanalyzer/pkg/dataset"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
	"github.com/dd0wney/cluso-netanalyzer/pkg/validation"
)

// skip reason label for malformed parser records
const reasonMalformed = "malformed"

// Ingest inserts edges directly. Self-loops are dropped and duplicate pairs
// keep their first weight.
func (a *Analyzer) Ingest(ctx context.Context, edges []graph.Edge) graph.IngestResult {
	_, span := tracer.Start(ctx, "Analyzer.ingest")
	defer span.End()

	start := time.Now()
	res := a.store.Ingest(edges)
	a.recordIngest(dataset.SchemeStream, res, time.Since(start))

	span.SetAttributes(
		attribute.Int("ingest.records", res.Records),
		attribute.Int("ingest.inserted", res.Inserted))
	a.logger.Info("edges ingested",
		logging.Int("records", res.Records),
		logging.Int("inserted", res.Inserted),
		logging.Int("duplicates", res.Duplicates),
		logging.Int("self_loops", res.SelfLoops),
		logging.Latency(time.Since(start)))
	return res
}

// IngestRequest validates an API ingest request and applies it
func (a *Analyzer) IngestRequest(ctx context.Context, req *validation.IngestRequest) (graph.IngestResult, error) {
	if err := validation.Struct("ingest", req); err != nil {
		return graph.IngestResult{}, a.reject(ctx, "ingest", err)
	}
	return a.Ingest(ctx, req.ToEdges()), nil
}

// Load resolves and reads every URI, then applies all batches at once. If any
// source fails nothing is applied and the error wraps graph.ErrIngestion.
func (a *Analyzer) Load(ctx context.Context, uris ...string) (*LoadResult, error) {
	sources, err := a.resolver.OpenAll(ctx, uris)
	if err != nil {
		return nil, a.loadFailed("", err)
	}
	return a.LoadSources(ctx, sources...)
}

// LoadSources reads already resolved sources and applies them all at once
func (a *Analyzer) LoadSources(ctx context.Context, sources ...dataset.Source) (*LoadResult, error) {
	ctx, span := tracer.Start(ctx, "Analyzer.load")
	defer span.End()
	span.SetAttributes(attribute.Int("load.sources", len(sources)))

	start := time.Now()
	batches, err := a.resolver.ReadAll(ctx, sources)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, a.loadFailed(schemeOf(sources), err)
	}

	edges := make([][]graph.Edge, len(batches))
	for i, b := range batches {
		edges[i] = b.Edges
	}
	results := a.store.IngestBatches(edges)

	out := &LoadResult{Sources: make([]SourceResult, len(batches))}
	for i, b := range batches {
		out.Sources[i] = SourceResult{Source: b.Source, Scheme: b.Scheme, Parse: b.Stats, Ingest: results[i]}
		out.Total.Merge(results[i])
		out.Skipped += b.Stats.Skipped
		a.recordIngest(b.Scheme, results[i], time.Since(start))
		a.metrics.RecordSkipped(reasonMalformed, b.Stats.Skipped)

		if b.Stats.Skipped > 0 {
			a.logger.Warn("malformed records skipped",
				logging.Source(b.Source), logging.Int("skipped", b.Stats.Skipped))
		}
	}

	span.SetAttributes(attribute.Int("load.inserted", out.Total.Inserted))
	a.logger.Info("datasets loaded",
		logging.Int("sources", len(batches)),
		logging.Int("inserted", out.Total.Inserted),
		logging.Int("skipped", out.Skipped),
		logging.Latency(time.Since(start)))
	return out, nil
}

func (a *Analyzer) loadFailed(scheme string, err error) error {
	if scheme == "" {
		scheme = "unknown"
	}
	a.metrics.RecordIngestFailure(scheme)
	a.logger.Error("dataset load failed", logging.Error(err))
	return err
}

func (a *Analyzer) recordIngest(scheme string, res graph.IngestResult, d time.Duration) {
	a.metrics.RecordIngest(scheme, res.Inserted, res.Duplicates, res.SelfLoops, d)
	stats := a.store.Statistics()
	a.metrics.SetGraphSize(int(stats.NodeCount), int(stats.EdgeCount))
}

func schemeOf(sources []dataset.Source) string {
	if len(sources) == 1 {
		return sources[0].Scheme()
	}
	return "mixed"
}
