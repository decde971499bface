package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-netanalyzer/pkg/config"
	"github.com/dd0wney/cluso-netanalyzer/pkg/dataset"
	"github.com/dd0wney/cluso-netanalyzer/pkg/engine"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
	"github.com/dd0wney/cluso-netanalyzer/pkg/telemetry"
)

const version = "0.3.0"

// stdinDataset names standard input as a dataset
const stdinDataset = "-"

// app holds everything a subcommand needs once the root pre-run has set it up
type app struct {
	configPath string
	datasets   []string
	logLevel   string
	workers    int
	seed       uint64
	trace      bool

	cfg      *config.Config
	logger   logging.Logger
	analyzer *engine.Analyzer
	loaded   *engine.LoadResult
	shutdown func(context.Context) error

	// flags records which global flags were set, so a config reload keeps them
	flags map[string]bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "netanalyzer",
		Short:         "Analyze large undirected networks from edge-list datasets",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	pf.StringArrayVarP(&a.datasets, "dataset", "d", nil, "edge-list dataset: path, *.sz snappy file, s3://bucket/key or - for stdin (repeatable)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.IntVar(&a.workers, "workers", 0, "query worker goroutines (0 = GOMAXPROCS)")
	pf.Uint64Var(&a.seed, "seed", 0, "seed for random choices, makes runs reproducible")
	pf.BoolVar(&a.trace, "trace", false, "print OpenTelemetry spans to stderr")

	root.AddCommand(
		newStatsCmd(a),
		newPathCmd(a),
		newCommunitiesCmd(a),
		newInfluenceCmd(a),
		newSeedsCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads the configuration, installs tracing, builds the analyzer and
// ingests every dataset. A failing dataset aborts the command.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a.flags = make(map[string]bool)
	for _, name := range []string{"log-level", "workers", "seed"} {
		a.flags[name] = cmd.Flags().Changed(name)
	}

	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger := logging.NewJSONLogger(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Log.Level))
	a.logger = logger.With(logging.Component("cli"))

	exporter := telemetry.ExporterNone
	if a.trace {
		exporter = telemetry.ExporterStdout
	}
	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "netanalyzer",
		ServiceVersion: version,
		Exporter:       exporter,
		Writer:         cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.shutdown = shutdown

	a.analyzer, err = engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	datasets := append(append([]string(nil), cfg.Datasets...), a.datasets...)
	if len(datasets) == 0 {
		return nil
	}
	sources, err := a.openSources(ctx, cmd.InOrStdin(), datasets)
	if err == nil {
		a.loaded, err = a.analyzer.LoadSources(ctx, sources...)
	}
	if err != nil {
		a.teardown(ctx)
		return err
	}
	return nil
}

// applyFlags overrides config values with the global flags that were set
func (a *app) applyFlags(cfg *config.Config) {
	if a.flags["log-level"] {
		cfg.Log.Level = a.logLevel
	}
	if a.flags["workers"] {
		cfg.Engine.Workers = a.workers
	}
	if a.flags["seed"] {
		seed := a.seed
		cfg.Engine.Seed = &seed
	}
}

func (a *app) openSources(ctx context.Context, stdin io.Reader, uris []string) ([]dataset.Source, error) {
	resolver := a.analyzer.Resolver()
	sources := make([]dataset.Source, 0, len(uris))
	usedStdin := false
	for _, uri := range uris {
		if uri == stdinDataset {
			if usedStdin {
				return nil, errors.New("stdin can only be used as a dataset once")
			}
			usedStdin = true
			sources = append(sources, dataset.NewStreamSource("stdin", stdin, false))
			continue
		}
		src, err := resolver.Open(ctx, uri)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func (a *app) teardown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.analyzer != nil {
		a.analyzer.Close()
		a.analyzer = nil
	}
	if a.shutdown != nil {
		shutdown := a.shutdown
		a.shutdown = nil
		if err := shutdown(ctx); err != nil {
			return fmt.Errorf("flush traces: %w", err)
		}
	}
	return nil
}
