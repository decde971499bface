package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "netanalyzer.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Simulation.Steps != DefaultSteps || cfg.Simulation.Probability != DefaultProbability {
		t.Errorf("simulation defaults = %+v", cfg.Simulation)
	}
	if cfg.Community.MaxPasses != DefaultMaxPasses {
		t.Errorf("MaxPasses = %d, want %d", cfg.Community.MaxPasses, DefaultMaxPasses)
	}
	if cfg.Server.Addr != DefaultAddr || cfg.Server.QueryTimeout != DefaultQueryTimeout {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.Engine.Seed != nil {
		t.Errorf("Seed = %v, want nil", *cfg.Engine.Seed)
	}
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
log:
  level: debug
engine:
  workers: 4
  seed: 42
simulation:
  steps: 20
  probability: 0.1
server:
  addr: "127.0.0.1:9000"
  query_timeout: 30s
s3:
  region: eu-west-1
  access_key_id: AKIA
  secret_access_key: secret
datasets:
  - data/karate.tsv
  - s3://graphs/roads.tsv.sz
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Engine.Workers != 4 {
		t.Errorf("unexpected log/engine config: %+v %+v", cfg.Log, cfg.Engine)
	}
	if cfg.Engine.Seed == nil || *cfg.Engine.Seed != 42 {
		t.Error("seed was not decoded")
	}
	if cfg.Simulation.Steps != 20 || cfg.Simulation.Probability != 0.1 {
		t.Errorf("simulation = %+v", cfg.Simulation)
	}
	// untouched fields keep their defaults
	if cfg.Simulation.Bins != DefaultBins {
		t.Errorf("Bins = %d, want default %d", cfg.Simulation.Bins, DefaultBins)
	}
	if cfg.Server.QueryTimeout != 30*time.Second {
		t.Errorf("QueryTimeout = %v, want 30s", cfg.Server.QueryTimeout)
	}
	if len(cfg.Datasets) != 2 || cfg.S3.Region != "eu-west-1" {
		t.Errorf("datasets/s3 = %v %+v", cfg.Datasets, cfg.S3)
	}
}

func TestParse_ValidationReportsEveryProblem(t *testing.T) {
	_, err := Parse([]byte(`
log:
  level: chatty
simulation:
  probability: 1.5
  steps: -1
s3:
  access_key_id: only-half
`))
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, field := range []string{"log.level", "simulation.probability", "simulation.steps", "s3.secret_access_key"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error does not mention %s: %v", field, err)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestLoader_ReloadNotifies(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "simulation:\n  steps: 10\n")

	loader, err := NewLoader(path, nil)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	if loader.Config().Simulation.Steps != 10 {
		t.Fatalf("initial steps = %d, want 10", loader.Config().Simulation.Steps)
	}

	seen := make(chan int, 1)
	loader.OnChange(func(c *Config) { seen <- c.Simulation.Steps })

	writeConfig(t, dir, "simulation:\n  steps: 25\n")
	if _, err := loader.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := <-seen; got != 25 {
		t.Errorf("callback saw steps = %d, want 25", got)
	}

	writeConfig(t, dir, "simulation:\n  probability: 7\n")
	if _, err := loader.Reload(); err == nil {
		t.Error("Expected invalid config to be rejected")
	}
	if loader.Config().Simulation.Steps != 25 {
		t.Error("rejected reload replaced the current config")
	}
}

func TestLoader_WatchPicksUpWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "log:\n  level: info\n")

	loader, err := NewLoader(path, nil)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}

	levels := make(chan string, 8)
	loader.OnChange(func(c *Config) { levels <- c.Log.Level })

	stop, err := loader.Watch()
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer stop()

	writeConfig(t, dir, "log:\n  level: debug\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case level := <-levels:
			if level == "debug" {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not reload the config")
		}
	}
}
