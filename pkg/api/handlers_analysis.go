package api

import (
	"errors"
	"net/http"

	"github.com/dd0wney/cluso-netanalyzer/pkg/validation"
)

// handleShortestPath answers GET /api/v1/path?start=&end=. The induced
// subgraph is only included with full=true. An unreachable end is not an
// error: the response has found=false.
func (s *Server) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	q := params(r)
	start, end := q.Node("start"), q.Node("end")
	full := q.Bool("full")
	if err := q.Err(); err != nil {
		s.respondFailure(w, r, "shortest_path", err)
		return
	}

	res, err := s.analyzer.ShortestPath(r.Context(), start, end)
	if err != nil {
		s.respondFailure(w, r, "shortest_path", err)
		return
	}
	if !full {
		res.Subgraph = nil
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleCommunities(w http.ResponseWriter, r *http.Request) {
	res, err := s.analyzer.DetectCommunities(r.Context())
	if err != nil {
		s.respondFailure(w, r, "communities", err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleSeeds(w http.ResponseWriter, r *http.Request) {
	q := params(r)
	n := q.Int("n", 1)
	if err := q.Err(); err != nil {
		s.respondFailure(w, r, "best_starting_nodes", err)
		return
	}

	nodes, err := s.analyzer.BestStartingNodes(r.Context(), n)
	if err != nil {
		s.respondFailure(w, r, "best_starting_nodes", err)
		return
	}
	s.respondJSON(w, http.StatusOK, SeedsResponse{N: n, Nodes: nodes})
}

// handleInfluence runs one diffusion. An empty body is a run with every
// default applied.
func (s *Server) handleInfluence(w http.ResponseWriter, r *http.Request) {
	var req validation.InfluenceRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.respondError(w, r, bodyStatus(err), err.Error())
		return
	}

	out, err := s.analyzer.SimulateInfluence(r.Context(), req)
	if err != nil {
		s.respondFailure(w, r, "influence", err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}
