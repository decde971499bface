package dataset

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

// maxConcurrentReads bounds parallel source reads in ReadAll
const maxConcurrentReads = 8

// Resolver turns dataset URIs into sources. The S3 client is created on
// first use so local-only runs never touch AWS configuration.
type Resolver struct {
	opts   S3Options
	logger logging.Logger

	mu     sync.Mutex
	client ObjectGetter
}

// NewResolver creates a resolver using opts for s3:// URIs
func NewResolver(opts S3Options, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{opts: opts, logger: logger.With(logging.Component("dataset"))}
}

// WithS3Client replaces the lazily created S3 client
func (r *Resolver) WithS3Client(client ObjectGetter) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.client = client
	return r
}

func (r *Resolver) s3Client(ctx context.Context) (ObjectGetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		client, err := NewS3Client(ctx, r.opts)
		if err != nil {
			return nil, err
		}
		r.client = client
	}
	return r.client, nil
}

// Open resolves a URI: s3://bucket/key, file://path or a plain path
func (r *Resolver) Open(ctx context.Context, uri string) (Source, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, err := ParseS3URI(uri)
		if err != nil {
			return nil, graph.IngestionFailure(uri, err)
		}
		client, err := r.s3Client(ctx)
		if err != nil {
			return nil, graph.IngestionFailure(uri, err)
		}
		return NewS3Source(client, bucket, key), nil
	case strings.HasPrefix(uri, "file://"):
		return NewFileSource(strings.TrimPrefix(uri, "file://")), nil
	default:
		return NewFileSource(uri), nil
	}
}

// OpenAll resolves every URI, failing on the first one that cannot be resolved
func (r *Resolver) OpenAll(ctx context.Context, uris []string) ([]Source, error) {
	sources := make([]Source, 0, len(uris))
	for _, uri := range uris {
		src, err := r.Open(ctx, uri)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// ReadAll reads every source concurrently. Batches are returned in source
// order. If any source fails the whole read fails and no batch is returned,
// so callers can apply the result all-or-nothing.
func (r *Resolver) ReadAll(ctx context.Context, sources []Source) ([]*Batch, error) {
	batches := make([]*Batch, len(sources))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, src := range sources {
		g.Go(func() error {
			start := time.Now()
			batch, err := src.Read(gCtx)
			if err != nil {
				r.logger.Warn("dataset read failed",
					logging.Source(src.Name()), logging.Error(err))
				return graph.IngestionFailure(src.Name(), err)
			}
			r.logger.Debug("dataset read",
				logging.Source(src.Name()),
				logging.String("scheme", batch.Scheme),
				logging.Count(batch.Stats.Edges),
				logging.Int("skipped", batch.Stats.Skipped),
				logging.Latency(time.Since(start)))
			batches[i] = batch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}
