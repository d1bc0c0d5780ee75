// Package config provides YAML-based configuration for Gambit.
//
// # Overview
//
// Configuration is loaded from a YAML file, defaulted, optionally overridden
// by GAMBIT_* environment variables, and validated before use:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("gambit.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Sections
//
//   - engine: external UCI engine process (path, restart policy, probing)
//   - queue: analysis request queue sizing and default deadlines
//   - analysis: confidence engine depths, tree bounds, and weighting policy
//   - tactics: tactic validator bounds
//   - telemetry: logging and Prometheus metrics
//   - server: operational HTTP listener
//
// # Live reload
//
// The confidence weighting coefficients are tunable policy rather than a
// fixed formula. Watcher observes the configuration file with fsnotify and
// delivers validated reloads through a callback, so weights can be re-tuned
// without restarting the service:
//
//	w, _ := config.NewWatcher(path, func(cfg *config.Config) {
//	    engine.SetWeights(cfg.Analysis.Weights)
//	}, nil)
//	w.Start()
//	defer w.Stop()
package config
