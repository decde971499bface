package api

import (
	"net/http"

	"github.com/dd0wney/cluso-netanalyzer/pkg/validation"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req validation.IngestRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, bodyStatus(err), err.Error())
		return
	}

	res, err := s.analyzer.IngestRequest(r.Context(), &req)
	if err != nil {
		s.respondFailure(w, r, "ingest", err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analyzer.Summary(r.Context())
	if err != nil {
		s.respondFailure(w, r, "stats", err)
		return
	}
	s.respondJSON(w, http.StatusOK, StatsResponse{
		Ingestions: s.analyzer.Statistics().Ingestions,
		Summary:    *summary,
	})
}

func (s *Server) handleDegreeDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := s.analyzer.DegreeDistribution(r.Context())
	if err != nil {
		s.respondFailure(w, r, "degree_distribution", err)
		return
	}
	s.respondJSON(w, http.StatusOK, DegreeDistributionResponse{Distribution: dist})
}

func (s *Server) handleClusteringEffect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	effect, err := s.analyzer.ClusteringEffect(ctx)
	if err != nil {
		s.respondFailure(w, r, "clustering_effect", err)
		return
	}
	dist, err := s.analyzer.ClusteringEffectDistribution(ctx)
	if err != nil {
		s.respondFailure(w, r, "clustering_effect", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ClusteringEffectResponse{
		ClusteringEffect: effect,
		Distribution:     dist,
	})
}

func (s *Server) handleCoefficients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	avg, err := s.analyzer.AverageClusteringCoefficient(ctx)
	if err != nil {
		s.respondFailure(w, r, "clustering_coefficients", err)
		return
	}
	all, err := s.analyzer.AllClusteringCoefficients(ctx)
	if err != nil {
		s.respondFailure(w, r, "clustering_coefficients", err)
		return
	}
	s.respondJSON(w, http.StatusOK, CoefficientsResponse{Average: avg, Coefficients: all})
}

func (s *Server) handleCoefficient(w http.ResponseWriter, r *http.Request) {
	id, err := pathNode(r, "node")
	if err != nil {
		s.respondFailure(w, r, "clustering_coefficient", err)
		return
	}
	c, err := s.analyzer.LocalClusteringCoefficient(r.Context(), id)
	if err != nil {
		s.respondFailure(w, r, "clustering_coefficient", err)
		return
	}
	s.respondJSON(w, http.StatusOK, CoefficientResponse{Node: id, Coefficient: c})
}

func (s *Server) handleCoefficientDistribution(w http.ResponseWriter, r *http.Request) {
	q := params(r)
	bins := q.Int("bins", s.analyzer.DefaultBins())
	if err := q.Err(); err != nil {
		s.respondFailure(w, r, "coefficient_distribution", err)
		return
	}

	buckets, err := s.analyzer.ClusteringCoefficientDistribution(r.Context(), bins)
	if err != nil {
		s.respondFailure(w, r, "coefficient_distribution", err)
		return
	}
	s.respondJSON(w, http.StatusOK, BucketsResponse{Bins: bins, Buckets: buckets})
}

func (s *Server) handleClusteringByDegree(w http.ResponseWriter, r *http.Request) {
	byDegree, err := s.analyzer.ClusteringEffectByDegree(r.Context())
	if err != nil {
		s.respondFailure(w, r, "clustering_by_degree", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ByDegreeResponse{ByDegree: byDegree})
}

func (s *Server) handleCommonNeighbors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	avg, err := s.analyzer.AverageCommonNeighbors(ctx)
	if err != nil {
		s.respondFailure(w, r, "common_neighbors", err)
		return
	}
	maxCN, err := s.analyzer.MaxCommonNeighbors(ctx)
	if err != nil {
		s.respondFailure(w, r, "common_neighbors", err)
		return
	}
	s.respondJSON(w, http.StatusOK, CommonNeighborsResponse{Average: avg, Max: maxCN})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	adj, err := s.analyzer.Graph(r.Context())
	if err != nil {
		s.respondFailure(w, r, "graph", err)
		return
	}
	s.respondJSON(w, http.StatusOK, GraphResponse{
		Nodes:     len(adj),
		Edges:     adj.EdgeCount(),
		Adjacency: adj,
	})
}
