package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/gambit/pkg/config"
	"mercator-hq/gambit/pkg/confidence"
	"mercator-hq/gambit/pkg/engine"
	"mercator-hq/gambit/pkg/telemetry/logging"
)

var analyzeFlags struct {
	fen      string
	baseline int
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot confidence analysis",
	Long: `Grow a confidence tree for a single position and print it as JSON.

The engine process is spawned for the duration of the command and shut
down afterwards. Logs go to stderr so stdout stays clean JSON.

Examples:
  gambit analyze --fen "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
  gambit analyze --fen "..." --baseline 60 | jq '.nodes[] | .color'`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.fen, "fen", "f", "", "position to analyze (FEN)")
	analyzeCmd.Flags().IntVarP(&analyzeFlags.baseline, "baseline", "b", 70, "confidence baseline (0-100)")
	_ = analyzeCmd.MarkFlagRequired("fen")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadOneShot()
	if err != nil {
		return err
	}

	queue := engine.New(cfg.Engine, cfg.Queue, nil, logger)
	defer queue.Close()

	analyzer := confidence.New(queue, cfg.Analysis, logger)
	tree, err := analyzer.Analyze(cmd.Context(), analyzeFlags.fen, analyzeFlags.baseline)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return printJSON(tree)
}

// loadOneShot prepares config and stderr logging for the one-shot commands.
func loadOneShot() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	logger, err := logging.SetupWithWriter(cfg.Telemetry.Logging, os.Stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return cfg, logger, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
