package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gambit",
	Short: "Gambit - chess analysis confidence service",
	Long: `Gambit scores how much a chess engine's evaluations can be trusted.

It owns a single external UCI engine process behind a serialized request
queue and offers two kinds of analysis:

  - Confidence trees: deep and shallow searches of the same position are
    compared move by move, and each node gets a 0-100 confidence score.
  - Tactic validation: a candidate move is tested against the opponent's
    best defenses and the resulting exchanges until a verdict settles.

Both are available over HTTP (gambit run) and as one-shot commands
(gambit analyze, gambit validate).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
