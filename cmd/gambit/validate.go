package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"mercator-hq/gambit/pkg/engine"
	"mercator-hq/gambit/pkg/tactics"
)

var validateFlags struct {
	fen  string
	move string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a tactical candidate move",
	Long: `Test a candidate move against the opponent's best defenses and print
the verdict as JSON.

The move is given in UCI coordinate notation (e2e4, e7e8q). The verdict is
accepted, rejected, or ambiguous, together with the supporting line that
settled it.

Examples:
  gambit validate --fen "3rk3/8/8/8/8/8/8/3RK3 w - - 0 1" --move d1d8`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.fen, "fen", "f", "", "position (FEN)")
	validateCmd.Flags().StringVarP(&validateFlags.move, "move", "m", "", "candidate move in UCI notation")
	_ = validateCmd.MarkFlagRequired("fen")
	_ = validateCmd.MarkFlagRequired("move")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadOneShot()
	if err != nil {
		return err
	}

	queue := engine.New(cfg.Engine, cfg.Queue, nil, logger)
	defer queue.Close()

	validator := tactics.NewValidator(queue, cfg.Tactics, logger)
	report, err := validator.Validate(cmd.Context(), validateFlags.fen, validateFlags.move)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return printJSON(report)
}
