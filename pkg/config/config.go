package config

import "time"

// Config is the root configuration structure for Gambit.
// It contains all configuration sections for the engine oracle, the request
// queue, the confidence engine, the tactic validator, telemetry, and the
// operational HTTP server.
type Config struct {
	// Engine contains configuration for the external UCI engine process
	// including the binary path, restart policy, and health probing.
	Engine EngineConfig `yaml:"engine"`

	// Queue contains configuration for the analysis request queue.
	Queue QueueConfig `yaml:"queue"`

	// Analysis contains configuration for the confidence engine including
	// depth pairs, tree bounds, and the confidence weighting policy.
	Analysis AnalysisConfig `yaml:"analysis"`

	// Tactics contains configuration for the tactic validator.
	Tactics TacticsConfig `yaml:"tactics"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Server contains configuration for the operational HTTP server.
	Server ServerConfig `yaml:"server"`
}

// EngineConfig contains configuration for the external UCI engine process.
// The engine binary is owned exclusively by the request queue worker; no
// other component spawns or messages it directly.
type EngineConfig struct {
	// Path is the filesystem path to the UCI engine binary.
	// Default: "stockfish"
	Path string `yaml:"path"`

	// HashMB is the engine hash table size in megabytes.
	// Default: 128
	HashMB int `yaml:"hash_mb"`

	// Threads is the number of search threads the engine may use.
	// Default: 1 (determinism at fixed depth matters more than speed here)
	Threads int `yaml:"threads"`

	// MaxDepth caps the depth forwarded to the engine. Requests beyond the
	// cap are clamped, not rejected.
	// Default: 30
	MaxDepth int `yaml:"max_depth"`

	// StartupTimeout is the maximum time to wait for the engine to complete
	// the UCI handshake after the process starts.
	// Default: 10s
	StartupTimeout time.Duration `yaml:"startup_timeout"`

	// MaxRestartAttempts is the number of consecutive restart attempts after
	// an engine crash before the queue flips into the degraded state.
	// Default: 3
	MaxRestartAttempts int `yaml:"max_restart_attempts"`

	// RestartBackoff is the pause between consecutive restart attempts.
	// Default: 500ms
	RestartBackoff time.Duration `yaml:"restart_backoff"`

	// ProbeDepth is the search depth used by health-check probes.
	// Default: 1
	ProbeDepth int `yaml:"probe_depth"`

	// ProbeTimeout bounds a single health-check probe.
	// Default: 3s
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// ProbeSchedule is a cron expression for background health probes.
	// Empty disables scheduled probing; HealthCheck remains callable.
	// Default: "@every 1m"
	ProbeSchedule string `yaml:"probe_schedule"`
}

// QueueConfig contains configuration for the analysis request queue.
type QueueConfig struct {
	// Capacity is the maximum number of requests waiting for service.
	// Submissions beyond capacity block the caller until space frees up or
	// the caller's context expires.
	// Default: 256
	Capacity int `yaml:"capacity"`

	// SubmitTimeout is the default deadline applied to a submission whose
	// context carries no deadline of its own. Zero means no default.
	// Default: 60s
	SubmitTimeout time.Duration `yaml:"submit_timeout"`
}

// AnalysisConfig contains configuration for the confidence engine.
type AnalysisConfig struct {
	// DeepDepth is the search depth treated as ground truth.
	// Default: 16
	DeepDepth int `yaml:"deep_depth"`

	// ShallowDepth is the cheap comparison depth.
	// Default: 4
	ShallowDepth int `yaml:"shallow_depth"`

	// MaxPly is the maximum ply distance from the tree root.
	// Default: 8
	MaxPly int `yaml:"max_ply"`

	// MaxBranches is the maximum number of sibling branches spawned from a
	// single below-baseline node.
	// Default: 2
	MaxBranches int `yaml:"max_branches"`

	// MaxNodes bounds total tree size regardless of branching.
	// Default: 64
	MaxNodes int `yaml:"max_nodes"`

	// Weights is the confidence weighting policy. The exact coefficients are
	// tunable operator policy, not a correctness invariant.
	Weights WeightsConfig `yaml:"weights"`
}

// WeightsConfig contains the coefficients combining the three confidence
// deltas into a single 0-100 score. Each delta contributes a penalty
// subtracted from a perfect score of 100; the result is clamped.
type WeightsConfig struct {
	// EvalGap is the penalty per centipawn of disagreement between the deep
	// and shallow top-line evaluations.
	// Default: 0.20
	EvalGap float64 `yaml:"eval_gap"`

	// MoveChoice is the flat penalty applied when the deep and shallow
	// searches prefer different best moves.
	// Default: 25
	MoveChoice float64 `yaml:"move_choice"`

	// ReplayGap is the penalty per centipawn of disagreement between the
	// shallow evaluation and the deep evaluation of the shallow line
	// replayed one ply forward.
	// Default: 0.15
	ReplayGap float64 `yaml:"replay_gap"`
}

// TacticsConfig contains configuration for the tactic validator.
type TacticsConfig struct {
	// DefenseDepth is the depth used when asking the engine for the
	// opponent's best defensive reply.
	// Default: 12
	DefenseDepth int `yaml:"defense_depth"`

	// MaxReplies caps the number of defensive replies simulated per
	// candidate.
	// Default: 12
	MaxReplies int `yaml:"max_replies"`

	// MaxExchangePly caps the capture-chain resolution. Hitting the cap
	// yields an ambiguous verdict, not an error.
	// Default: 16
	MaxExchangePly int `yaml:"max_exchange_ply"`

	// DecisiveScore is the centipawn advantage treated as winning even when
	// the settled material balance is level, covering promotions the
	// defense cannot stop.
	// Default: 800
	DecisiveScore int `yaml:"decisive_score"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exported.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "gambit"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "queue"
	Subsystem string `yaml:"subsystem"`

	// WaitTimeBuckets are histogram buckets for queue wait time in seconds.
	WaitTimeBuckets []float64 `yaml:"wait_time_buckets"`
}

// ServerConfig contains configuration for the operational HTTP server that
// exposes metrics, health endpoints, and the analyze/validate entry points.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8713"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response. Analysis
	// requests can legitimately take a while at deep depth.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}
