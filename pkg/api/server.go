package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-netanalyzer/pkg/api/middleware"
	"github.com/dd0wney/cluso-netanalyzer/pkg/config"
	"github.com/dd0wney/cluso-netanalyzer/pkg/engine"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graphql"
	"github.com/dd0wney/cluso-netanalyzer/pkg/health"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

const (
	shutdownTimeout = 15 * time.Second
	idleTimeout     = 60 * time.Second
)

// NewServer creates the API server for an analyzer. Unless a checker is
// supplied, readiness requires a non-empty graph.
func NewServer(a *engine.Analyzer, cfg config.ServerConfig, opts ...Option) (*Server, error) {
	if a == nil {
		return nil, errors.New("api: analyzer is required")
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.DefaultMaxBodyBytes
	}

	s := &Server{
		analyzer: a,
		logger:   logging.NewNopLogger(),
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("api"))

	if s.checker == nil {
		s.checker = health.NewChecker()
		s.checker.RegisterLiveness("workers", health.WorkersCheck(a.Workers))
		s.checker.RegisterLiveness("memory", health.MemoryCheck(cfg.HeapLimitBytes))
		s.checker.RegisterReadiness("graph", health.GraphCheck(a.Statistics, false))
	}

	schema, err := graphql.NewSchema(a)
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	s.graphqlHandler = graphql.NewHandler(schema, graphql.DefaultMaxDepth)

	s.handler = s.buildHandler()
	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /health", s.checker.LivenessHandler())
	mux.Handle("GET /health/ready", s.checker.ReadinessHandler())
	mux.Handle("GET /metrics", promhttp.HandlerFor(
		s.analyzer.Metrics().Gatherer(),
		promhttp.HandlerOpts{},
	))
	mux.Handle("POST /graphql", s.graphqlHandler)

	mux.HandleFunc("POST /api/v1/ingest", s.handleIngest)
	mux.HandleFunc("GET /api/v1/graph", s.handleGraph)
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)
	mux.HandleFunc("GET /api/v1/degree-distribution", s.handleDegreeDistribution)
	mux.HandleFunc("GET /api/v1/clustering/effect", s.handleClusteringEffect)
	mux.HandleFunc("GET /api/v1/clustering/coefficients", s.handleCoefficients)
	mux.HandleFunc("GET /api/v1/clustering/coefficients/distribution", s.handleCoefficientDistribution)
	mux.HandleFunc("GET /api/v1/clustering/coefficients/{node}", s.handleCoefficient)
	mux.HandleFunc("GET /api/v1/clustering/by-degree", s.handleClusteringByDegree)
	mux.HandleFunc("GET /api/v1/common-neighbors", s.handleCommonNeighbors)
	mux.HandleFunc("GET /api/v1/path", s.handleShortestPath)
	mux.HandleFunc("GET /api/v1/communities", s.handleCommunities)
	mux.HandleFunc("GET /api/v1/seeds", s.handleSeeds)
	mux.HandleFunc("POST /api/v1/influence", s.handleInfluence)

	return mux
}

// buildHandler wraps the routes. Metrics sits inside every wrapper that
// replaces the request, so it sees the pattern the mux stores on it.
func (s *Server) buildHandler() http.Handler {
	return middleware.Chain(s.routes(),
		middleware.RequestID(),
		middleware.PanicRecovery(s.logger),
		middleware.Logging(s.logger),
		middleware.CORS(s.cfg.CORSOrigins),
		middleware.Timeout(s.cfg.QueryTimeout),
		middleware.Metrics(s.analyzer.Metrics()),
		middleware.BodySizeLimit(s.cfg.MaxBodyBytes),
	)
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Checker returns the health checker backing /health
func (s *Server) Checker() *health.Checker {
	return s.checker
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", logging.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("api server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
