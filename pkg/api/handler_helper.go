package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dd0wney/cluso-netanalyzer/pkg/api/middleware"
	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := middleware.WriteError(w, r, status, message); err != nil {
		s.logger.Warn("encode error response", logging.Error(err))
	}
}

// respondFailure maps an analyzer error to a status code. Rejected
// arguments are the client's fault; everything else is logged and reported
// without internal detail.
func (s *Server) respondFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case graph.IsInvalidArgument(err):
		s.respondError(w, r, http.StatusBadRequest, err.Error())
	case graph.IsIngestionFailure(err):
		s.logger.Warn("ingestion failed", logging.Query(op), logging.Error(err))
		s.respondError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed",
			logging.Query(op),
			logging.String("request_id", middleware.GetRequestID(r)),
			logging.Error(err))
		s.respondError(w, r, http.StatusInternalServerError, op+" failed")
	}
}

var errEmptyBody = graph.InvalidArgument("decode", "body", "empty request body")

// decodeJSON reads the whole body into v. Unknown fields are rejected so a
// misspelt option is not silently ignored.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return graph.InvalidArgument("decode", "body", err.Error())
	}
	return nil
}

// bodyStatus picks the status for a failed decode
func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// queryParams extracts typed query string values, collecting the first error.
type queryParams struct {
	r   *http.Request
	err error
}

func params(r *http.Request) *queryParams {
	return &queryParams{r: r}
}

// Node parses a required node id
func (q *queryParams) Node(name string) uint64 {
	if q.err != nil {
		return 0
	}
	raw := q.r.URL.Query().Get(name)
	if raw == "" {
		q.err = graph.InvalidArgument("query", name, "is required")
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		q.err = graph.InvalidArgument("query", name, fmt.Sprintf("%q is not a node id", raw))
		return 0
	}
	return id
}

// Int parses an optional integer, returning def when absent
func (q *queryParams) Int(name string, def int) int {
	if q.err != nil {
		return def
	}
	raw := q.r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.err = graph.InvalidArgument("query", name, fmt.Sprintf("%q is not an integer", raw))
		return def
	}
	return n
}

// Bool parses an optional boolean, false when absent
func (q *queryParams) Bool(name string) bool {
	if q.err != nil {
		return false
	}
	raw := q.r.URL.Query().Get(name)
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.err = graph.InvalidArgument("query", name, fmt.Sprintf("%q is not a boolean", raw))
		return false
	}
	return b
}

func (q *queryParams) Err() error {
	return q.err
}

// pathNode parses a node id from a path wildcard
func pathNode(r *http.Request, name string) (uint64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, graph.InvalidArgument("path", name, fmt.Sprintf("%q is not a node id", raw))
	}
	return id, nil
}
