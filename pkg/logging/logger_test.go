package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func entries(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var out []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("line %q is not JSON: %v", line, err)
		}
		out = append(out, e)
	}
	return out
}

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DebugLevel, true},
		{" INFO ", InfoLevel, true},
		{"Warn", WarnLevel, true},
		{"warning", WarnLevel, true},
		{"error", ErrorLevel, true},
		{"trace", InfoLevel, false},
		{"", InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LookupLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("LookupLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
	if Level(9).String() != "UNKNOWN" {
		t.Errorf("out of range level = %q", Level(9).String())
	}
}

func TestJSONLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("pass finished")
	logger.Info("dataset loaded")
	logger.Warn("skipped line")
	logger.Log(ErrorLevel, "load failed")

	got := entries(t, &buf)
	if len(got) != 2 || got[0].Level != "WARN" || got[1].Level != "ERROR" {
		t.Fatalf("entries = %+v, want WARN then ERROR", got)
	}
	if _, err := time.Parse(time.RFC3339Nano, got[0].Time); err != nil {
		t.Errorf("time %q: %v", got[0].Time, err)
	}
}

func TestJSONLogger_WithAndOverride(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, InfoLevel)
	engine := root.With(Component("engine"), Query("communities"))
	sibling := root.With(Component("dataset"))

	engine.Info("query finished", Query("louvain"), Count(3))
	sibling.Info("opened", Source("s3://graphs/karate.tsv"))

	got := entries(t, &buf)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if f := got[0].Fields; f["component"] != "engine" || f["query"] != "louvain" || f["count"] != float64(3) {
		t.Errorf("engine fields = %v", f)
	}
	if f := got[1].Fields; f["component"] != "dataset" || f["query"] != nil {
		t.Errorf("children share preset fields: %v", f)
	}
}

func TestJSONLogger_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("ready")

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["fields"]; ok {
		t.Errorf("fields present on a bare entry: %v", raw)
	}
}

func TestJSONLogger_SetLevelReachesChildren(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, InfoLevel)
	child := root.With(Component("config"))

	child.Debug("hidden")
	root.SetLevel(DebugLevel)
	child.Debug("visible")

	if child.GetLevel() != DebugLevel {
		t.Errorf("child level = %v", child.GetLevel())
	}
	if got := entries(t, &buf); len(got) != 1 || got[0].Message != "visible" {
		t.Errorf("entries = %+v", got)
	}
}

func TestJSONLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := logger.With(Int("worker", i))
			for range 50 {
				child.Info("edge batch")
			}
		}()
	}
	wg.Wait()

	if got := entries(t, &buf); len(got) != 400 {
		t.Errorf("got %d entries, want 400", len(got))
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	if d := StartTimer(logger, "max_degree", Query("max_degree")).End(Int("result", 4)); d < 0 {
		t.Errorf("elapsed = %v", d)
	}
	StartTimer(logger, "coefficient_distribution").Fail(WarnLevel, errors.New("bins must be positive"))
	StartTimer(logger, "load").Fail(ErrorLevel, nil)

	got := entries(t, &buf)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].Level != "DEBUG" || got[0].Fields["result"] != float64(4) || got[0].Fields["latency"] == nil {
		t.Errorf("End entry = %+v", got[0])
	}
	if got[1].Level != "WARN" || got[1].Fields["error"] != "bins must be positive" {
		t.Errorf("Fail entry = %+v", got[1])
	}
	if v, ok := got[2].Fields["error"]; !ok || v != nil {
		t.Errorf("nil error field = %v, %v", v, ok)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.With(Component("x")).Error("ignored")
	logger.SetLevel(DebugLevel)
	if logger.GetLevel() != InfoLevel {
		t.Errorf("nop level = %v", logger.GetLevel())
	}
}

func BenchmarkJSONLogger_Filtered(b *testing.B) {
	logger := NewJSONLogger(&bytes.Buffer{}, ErrorLevel)
	for b.Loop() {
		logger.Info("query finished", Query("stats"), Count(42))
	}
}
