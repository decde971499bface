package middleware

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON envelope of every error the API writes, whether it
// comes from a handler or from the middleware in front of it.
type ErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError sends an ErrorBody with the given status. The request id is
// taken from the context set by RequestID.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(errorBody(r, status, message))
}

func errorBody(r *http.Request, status int, message string) ErrorBody {
	return ErrorBody{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      status,
		RequestID: GetRequestID(r),
	}
}
