package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
	"github.com/dd0wney/cluso-netanalyzer/pkg/validation"
)

// Defaults
const (
	DefaultLogLevel     = "info"
	DefaultSteps        = 500
	DefaultProbability  = 0.5
	DefaultBins         = 10
	DefaultMaxPasses    = 100
	DefaultAddr         = ":8080"
	DefaultQueryTimeout = 5 * time.Minute
	DefaultMaxBodyBytes = 64 << 20
)

// Config is the complete analyzer configuration
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Engine     EngineConfig     `yaml:"engine"`
	Simulation SimulationConfig `yaml:"simulation"`
	Community  CommunityConfig  `yaml:"community"`
	Server     ServerConfig     `yaml:"server"`
	S3         S3Config         `yaml:"s3"`
	// Datasets are loaded at startup: local paths, *.sz snappy files or s3://bucket/key
	Datasets []string `yaml:"datasets"`
}

// LogConfig controls the JSON logger
type LogConfig struct {
	Level string `yaml:"level"`
}

// EngineConfig controls query execution
type EngineConfig struct {
	// Workers is the number of goroutines per query. 0 means one per CPU.
	Workers int `yaml:"workers"`
	// Seed makes diffusion runs reproducible. Nil seeds from the clock.
	Seed *uint64 `yaml:"seed"`
}

// SimulationConfig holds the defaults of influence diffusion requests
type SimulationConfig struct {
	Steps       int     `yaml:"steps"`
	Probability float64 `yaml:"probability"`
	Bins        int     `yaml:"bins"`
}

// CommunityConfig controls community detection
type CommunityConfig struct {
	MaxPasses int `yaml:"max_passes"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// QueryTimeout bounds how long a client waits for a response. The query
	// itself always runs to completion.
	QueryTimeout time.Duration `yaml:"query_timeout"`
	// CORSOrigins lists browser origins allowed to call the API; "*" allows any
	CORSOrigins  []string `yaml:"cors_origins"`
	MaxBodyBytes int64    `yaml:"max_body_bytes"`
	// HeapLimitBytes marks the service degraded once the Go heap grows past
	// it. 0 disables the check.
	HeapLimitBytes uint64 `yaml:"heap_limit_bytes"`
}

// S3Config configures s3:// dataset sources. Static credentials are optional;
// without them the default AWS credential chain is used.
type S3Config struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: DefaultLogLevel},
		Simulation: SimulationConfig{
			Steps:       DefaultSteps,
			Probability: DefaultProbability,
			Bins:        DefaultBins,
		},
		Community: CommunityConfig{MaxPasses: DefaultMaxPasses},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: DefaultQueryTimeout + 30*time.Second,
			QueryTimeout: DefaultQueryTimeout,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("config")

	cv.Custom("log.level", func() error {
		if _, ok := logging.LookupLevel(c.Log.Level); !ok {
			return fmt.Errorf("unknown level %q", c.Log.Level)
		}
		return nil
	})
	cv.RangeInt("engine.workers", c.Engine.Workers, 0, parallel.MaxWorkers)
	cv.RangeInt("simulation.steps", c.Simulation.Steps, 0, 100_000)
	cv.RangeFloat("simulation.probability", c.Simulation.Probability, 0, 1)
	cv.RangeInt("simulation.bins", c.Simulation.Bins, 1, 10_000)
	cv.Positive("community.max_passes", c.Community.MaxPasses)
	cv.Required("server.addr", c.Server.Addr)
	cv.RangeDuration("server.query_timeout", c.Server.QueryTimeout, time.Second, 24*time.Hour)
	cv.Custom("server.max_body_bytes", func() error {
		if c.Server.MaxBodyBytes < 1024 {
			return fmt.Errorf("must be at least 1024, got %d", c.Server.MaxBodyBytes)
		}
		return nil
	})
	cv.When(c.S3.AccessKeyID != "" || c.S3.SecretAccessKey != "", func(cv *validation.ConfigValidator) {
		cv.Required("s3.access_key_id", c.S3.AccessKeyID)
		cv.Required("s3.secret_access_key", c.S3.SecretAccessKey)
	})

	return cv.Validate()
}
