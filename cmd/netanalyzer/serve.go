package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-netanalyzer/pkg/api"
	"github.com/dd0wney/cluso-netanalyzer/pkg/config"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP and GraphQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serverCfg := a.cfg.Server
			if cmd.Flags().Changed("addr") {
				serverCfg.Addr = addr
			}

			if a.configPath != "" {
				stopWatch, err := a.watchConfig()
				if err != nil {
					return err
				}
				defer stopWatch()
			}

			srv, err := api.NewServer(a.analyzer, serverCfg, api.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	return cmd
}

// watchConfig applies edits of the config file to the running analyzer.
// Global flags keep precedence over reloaded values.
func (a *app) watchConfig() (func(), error) {
	loader, err := config.NewLoader(a.configPath, a.logger)
	if err != nil {
		return nil, err
	}
	loader.OnChange(func(cfg *config.Config) {
		a.applyFlags(cfg)
		a.analyzer.ApplyConfig(cfg)
		a.logger.Info("analyzer settings updated",
			logging.String("log_level", cfg.Log.Level),
			logging.Int("steps", cfg.Simulation.Steps),
			logging.Float64("probability", cfg.Simulation.Probability))
	})
	return loader.Watch()
}
