package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
)

// Request is a GraphQL HTTP request body
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Response is a GraphQL HTTP response body
type Response struct {
	Data   any             `json:"data,omitempty"`
	Errors []ResponseError `json:"errors,omitempty"`
}

// ResponseError is one GraphQL error
type ResponseError struct {
	Message string `json:"message"`
}

// Handler serves POST /graphql
type Handler struct {
	schema   graphql.Schema
	maxDepth int
}

// NewHandler creates a handler enforcing maxDepth on every query
func NewHandler(schema graphql.Schema, maxDepth int) *Handler {
	return &Handler{schema: schema, maxDepth: maxDepth}
}

// ServeHTTP executes the query in the request body. Errors are reported in
// the body with status 200, as GraphQL clients expect.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(Response{Errors: []ResponseError{{Message: "method not allowed"}}})
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{Errors: []ResponseError{{Message: "invalid request body"}}})
		return
	}

	result := Execute(r.Context(), h.schema, req.Query, req.Variables, h.maxDepth)

	resp := Response{Data: result.Data}
	for _, err := range result.Errors {
		resp.Errors = append(resp.Errors, ResponseError{Message: err.Message})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
