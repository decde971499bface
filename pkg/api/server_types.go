package api

import (
	"net/http"

	"github.com/dd0wney/cluso-netanalyzer/pkg/config"
	"github.com/dd0wney/cluso-netanalyzer/pkg/engine"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graphql"
	"github.com/dd0wney/cluso-netanalyzer/pkg/health"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

// Server represents the HTTP API server
type Server struct {
	analyzer       *engine.Analyzer
	checker        *health.Checker
	graphqlHandler *graphql.Handler
	logger         logging.Logger
	cfg            config.ServerConfig

	handler http.Handler
}

// Option customizes a Server
type Option func(*Server)

// WithLogger sets the server logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithChecker replaces the default health checker
func WithChecker(checker *health.Checker) Option {
	return func(s *Server) {
		if checker != nil {
			s.checker = checker
		}
	}
}
