package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "engine.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All errors are collected and returned
// together rather than failing on the first.
func Validate(cfg *Config) error {
	var errs []FieldError

	addErr := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	// Engine
	if cfg.Engine.Path == "" {
		addErr("engine.path", "engine binary path is required")
	}
	if cfg.Engine.HashMB < 1 {
		addErr("engine.hash_mb", "must be at least 1")
	}
	if cfg.Engine.Threads < 1 {
		addErr("engine.threads", "must be at least 1")
	}
	if cfg.Engine.MaxDepth < 1 {
		addErr("engine.max_depth", "must be at least 1")
	}
	if cfg.Engine.MaxRestartAttempts < 1 {
		addErr("engine.max_restart_attempts", "must be at least 1")
	}
	if cfg.Engine.ProbeDepth < 1 {
		addErr("engine.probe_depth", "must be at least 1")
	}
	if cfg.Engine.ProbeSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Engine.ProbeSchedule); err != nil {
			addErr("engine.probe_schedule", fmt.Sprintf("invalid cron expression: %v", err))
		}
	}

	// Queue
	if cfg.Queue.Capacity < 1 {
		addErr("queue.capacity", "must be at least 1")
	}

	// Analysis
	if cfg.Analysis.DeepDepth < 1 {
		addErr("analysis.deep_depth", "must be at least 1")
	}
	if cfg.Analysis.ShallowDepth < 1 {
		addErr("analysis.shallow_depth", "must be at least 1")
	}
	if cfg.Analysis.ShallowDepth >= cfg.Analysis.DeepDepth {
		addErr("analysis.shallow_depth", "must be less than deep_depth")
	}
	if cfg.Analysis.MaxPly < 1 {
		addErr("analysis.max_ply", "must be at least 1")
	}
	if cfg.Analysis.MaxBranches < 0 {
		addErr("analysis.max_branches", "must not be negative")
	}
	if cfg.Analysis.MaxNodes < 1 {
		addErr("analysis.max_nodes", "must be at least 1")
	}
	if cfg.Analysis.Weights.EvalGap < 0 {
		addErr("analysis.weights.eval_gap", "must not be negative")
	}
	if cfg.Analysis.Weights.MoveChoice < 0 {
		addErr("analysis.weights.move_choice", "must not be negative")
	}
	if cfg.Analysis.Weights.ReplayGap < 0 {
		addErr("analysis.weights.replay_gap", "must not be negative")
	}

	// Tactics
	if cfg.Tactics.DefenseDepth < 1 {
		addErr("tactics.defense_depth", "must be at least 1")
	}
	if cfg.Tactics.MaxReplies < 1 {
		addErr("tactics.max_replies", "must be at least 1")
	}
	if cfg.Tactics.MaxExchangePly < 2 {
		addErr("tactics.max_exchange_ply", "must be at least 2")
	}
	if cfg.Tactics.DecisiveScore < 1 {
		addErr("tactics.decisive_score", "must be positive")
	}

	// Telemetry
	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		addErr("telemetry.logging.level", fmt.Sprintf("unknown level %q", cfg.Telemetry.Logging.Level))
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		addErr("telemetry.logging.format", fmt.Sprintf("unknown format %q", cfg.Telemetry.Logging.Format))
	}

	// Server
	if cfg.Server.ListenAddress == "" {
		addErr("server.listen_address", "listen address is required")
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
