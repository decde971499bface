package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// MetricsRecorder receives per-request measurements
type MetricsRecorder interface {
	RecordHTTPRequest(method, path, status string, duration time.Duration)
	AddHTTPInFlight(delta float64)
}

// statusWriter captures the status code and body size of a response
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func wrap(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Metrics records request counts, latency and in-flight requests. The path
// label is the matched route pattern so ids in query strings or paths do not
// create new series.
func Metrics(recorder MetricsRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder.AddHTTPInFlight(1)
			defer recorder.AddHTTPInFlight(-1)

			sw := wrap(w)
			next.ServeHTTP(sw, r)

			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}
			recorder.RecordHTTPRequest(r.Method, path, strconv.Itoa(sw.status), time.Since(start))
		})
	}
}
