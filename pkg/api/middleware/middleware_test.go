package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

// --- BodySizeLimit ---

func TestBodySizeLimit(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name          string
		body          string
		contentLength int64
		want          int
	}{
		{"small body", "tiny", -1, http.StatusOK},
		{"no body", "", 0, http.StatusOK},
		{"declared too large", "", 1000, http.StatusRequestEntityTooLarge},
		{"streamed too large", strings.Repeat("x", 64), -1, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.ContentLength = tt.contentLength
			rr := httptest.NewRecorder()

			BodySizeLimit(16)(echo).ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

func TestBodySizeLimit_DeclaredTooLargeIsJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(strings.Repeat("x", 32)))
	rr := httptest.NewRecorder()
	Chain(okHandler(), RequestID(), BodySizeLimit(16)).ServeHTTP(rr, req)

	var body ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("413 body is not JSON: %q", rr.Body.String())
	}
	if body.Code != http.StatusRequestEntityTooLarge || body.RequestID == "" || !strings.Contains(body.Message, "16 bytes") {
		t.Errorf("body = %+v", body)
	}
}

// --- RequestID ---

func TestRequestID_Generated(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(seen) != 36 {
		t.Errorf("Expected a UUID request id, got %q", seen)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Error("Response header should echo the request id")
	}
}

func TestRequestID_ClientSuppliedIsSanitized(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-123_x.y", "abc-123_x.y"},
		{"<script>evil</script>", "scriptevilscript"},
		{strings.Repeat("a", 100), strings.Repeat("a", 64)},
	}

	for _, tt := range tests {
		var seen string
		handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, tt.in)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if seen != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, seen, tt.want)
		}
	}
}

// --- PanicRecovery and Logging ---

func TestPanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.DebugLevel)

	handler := PanicRecovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/explode", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "boom") {
		t.Error("panic value must not reach the client")
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rr.Header().Get("Content-Type"))
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Error("panic value should be logged")
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.InfoLevel)

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), RequestID(), Logging(logger))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	out := buf.String()
	for _, want := range []string{`"path":"/api/v1/stats"`, `"status":418`, `"request_id"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
}

// --- Metrics ---

type fakeRecorder struct {
	mu       sync.Mutex
	inFlight float64
	peak     float64
	requests []string
}

func (f *fakeRecorder) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, method+" "+path+" "+status)
}

func (f *fakeRecorder) AddHTTPInFlight(delta float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight += delta
	f.peak = max(f.peak, f.inFlight)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/path", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	handler := Metrics(rec)(mux)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/path?start=1&end=2", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	want := []string{"GET GET /api/v1/path 202", "GET unmatched 404"}
	if len(rec.requests) != len(want) {
		t.Fatalf("recorded %v, want %v", rec.requests, want)
	}
	for i := range want {
		if rec.requests[i] != want[i] {
			t.Errorf("request %d = %q, want %q", i, rec.requests[i], want[i])
		}
	}
	if rec.inFlight != 0 || rec.peak != 1 {
		t.Errorf("in-flight = %v peak = %v, want 0 and 1", rec.inFlight, rec.peak)
	}
}

func TestMetrics_NilRecorder(t *testing.T) {
	rr := httptest.NewRecorder()
	Metrics(nil)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Body.String() != "ok" {
		t.Error("nil recorder should pass requests through")
	}
}

// --- Timeout ---

func TestTimeout_WritesErrorEnvelope(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte("late"))
	})

	handler := Chain(slow, RequestID(), Timeout(10*time.Millisecond))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/communities", nil)
	req.Header.Set(RequestIDHeader, "trace-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rr.Header().Get("Content-Type"))
	}
	var body ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body %q is not JSON: %v", rr.Body.String(), err)
	}
	if body.Code != http.StatusServiceUnavailable || body.RequestID != "trace-42" || body.Message == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestTimeout_FastResponsesUntouched(t *testing.T) {
	plain := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("not ready"))
	})

	for _, d := range []time.Duration{0, time.Minute} {
		rr := httptest.NewRecorder()
		Timeout(d)(plain).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if rr.Code != http.StatusServiceUnavailable || rr.Body.String() != "not ready" {
			t.Errorf("d=%v: got %d %q", d, rr.Code, rr.Body.String())
		}
		if ct := rr.Header().Get("Content-Type"); ct != "text/plain" {
			t.Errorf("d=%v: Content-Type = %q", d, ct)
		}
	}
}

// --- CORS ---

func TestCORS(t *testing.T) {
	tests := []struct {
		name      string
		origins   []string
		origin    string
		preflight bool
		wantCode  int
		wantAllow string
	}{
		{"disabled", nil, "http://ui.local", false, http.StatusOK, ""},
		{"listed origin", []string{"http://ui.local"}, "http://ui.local", false, http.StatusOK, "http://ui.local"},
		{"unlisted origin", []string{"http://ui.local"}, "http://evil.local", false, http.StatusOK, ""},
		{"wildcard", []string{"*"}, "http://any.local", false, http.StatusOK, "http://any.local"},
		{"preflight allowed", []string{"*"}, "http://any.local", true, http.StatusNoContent, "http://any.local"},
		{"preflight refused", nil, "http://any.local", true, http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "/api/v1/stats", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			rr := httptest.NewRecorder()
			CORS(tt.origins)(okHandler()).ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rr.Code, tt.wantCode)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}
