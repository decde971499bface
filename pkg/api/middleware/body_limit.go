package middleware

import (
	"fmt"
	"net/http"
)

// BodySizeLimit caps request bodies at maxBytes. A Content-Length above the
// cap is answered with 413 straight away. Chunked bodies are wrapped in
// http.MaxBytesReader, so the handler sees *http.MaxBytesError on overrun.
func BodySizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	tooLarge := fmt.Sprintf("request body exceeds %d bytes", maxBytes)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.ContentLength > maxBytes:
				WriteError(w, r, http.StatusRequestEntityTooLarge, tooLarge)
				return
			case r.Body != nil && r.Body != http.NoBody:
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
