package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Timeout answers 503 with the JSON error envelope once a request has run
// for longer than d. The handler keeps running in the background and its
// late output is discarded. A non-positive d disables the wrapper.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			body, err := json.Marshal(errorBody(r, http.StatusServiceUnavailable, "query timed out"))
			if err != nil {
				body = []byte(`{"error":"Service Unavailable","code":503}`)
			}
			// the inner deadline is inherited from ctx, so both expire together
			th := http.TimeoutHandler(next, d, string(body)+"\n")
			th.ServeHTTP(&timeoutWriter{ResponseWriter: w, ctx: ctx}, r.WithContext(ctx))
		})
	}
}

// timeoutWriter labels the timeout body as JSON. Responses the handler
// finished in time carry their own headers.
type timeoutWriter struct {
	http.ResponseWriter
	ctx context.Context
}

func (tw *timeoutWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && errors.Is(tw.ctx.Err(), context.DeadlineExceeded) {
		tw.Header().Set("Content-Type", "application/json")
		tw.Header().Set("X-Content-Type-Options", "nosniff")
	}
	tw.ResponseWriter.WriteHeader(code)
}
