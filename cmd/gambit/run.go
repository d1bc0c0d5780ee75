package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"mercator-hq/gambit/pkg/config"
	"mercator-hq/gambit/pkg/confidence"
	"mercator-hq/gambit/pkg/engine"
	"mercator-hq/gambit/pkg/server"
	"mercator-hq/gambit/pkg/tactics"
	"mercator-hq/gambit/pkg/telemetry/logging"
	"mercator-hq/gambit/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"serve"},
	Short:   "Start the Gambit analysis service",
	Long: `Start the Gambit HTTP service with the specified configuration.

The service spawns the configured UCI engine behind its request queue and
serves confidence analysis, tactic validation, queue metrics, Prometheus
exposition, and health probes.

Examples:
  # Start with default config
  gambit run

  # Start with custom config
  gambit run --config /etc/gambit/config.yaml

  # Override listen address
  gambit run --listen 0.0.0.0:8713

  # Validate config without starting the service
  gambit run --dry-run`,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the service")
}

func runService(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.Setup(cfg.Telemetry.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	if runFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	logger.Info("starting gambit",
		"version", Version,
		"config", cfgFile,
		"engine_path", cfg.Engine.Path,
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Metrics are optional; a nil handler leaves /metrics unmounted.
	var (
		collector      *metrics.Collector
		observer       engine.Observer
		metricsHandler http.Handler
	)
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
		observer = collector
		metricsHandler = collector.Handler()
	}

	queue := engine.New(cfg.Engine, cfg.Queue, observer, logger)
	defer queue.Close()

	scheduler := engine.NewProbeScheduler(queue, cfg.Engine.ProbeSchedule, logger)
	if err := scheduler.Start(ctx); err != nil {
		logger.Warn("health probe scheduler failed to start", "error", err)
	} else {
		defer scheduler.Stop()
	}

	analyzer := confidence.New(queue, cfg.Analysis, logger)
	validator := tactics.NewValidator(queue, cfg.Tactics, logger)

	// Confidence weights reload on config file changes; everything else
	// requires a restart.
	watcher, err := config.NewWatcher(cfgFile, func(fresh *config.Config) {
		analyzer.SetWeights(confidence.WeightsFromConfig(fresh.Analysis.Weights))
		logger.Info("confidence weights reloaded",
			"eval_gap", fresh.Analysis.Weights.EvalGap,
			"move_choice", fresh.Analysis.Weights.MoveChoice,
			"replay_gap", fresh.Analysis.Weights.ReplayGap,
		)
	}, logger)
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	} else if err := watcher.Start(); err != nil {
		logger.Warn("config watcher failed to start", "error", err)
	} else {
		defer watcher.Stop()
	}

	srv := server.New(cfg.Server, analyzer, validator, queue, metricsHandler, logger)
	srv.SetVersion(Version, GitCommit, BuildDate)

	return srv.Start(ctx)
}
