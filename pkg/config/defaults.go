package config

import "time"

// Default values for configuration fields.
const (
	// Engine defaults
	DefaultEnginePath         = "stockfish"
	DefaultEngineHashMB       = 128
	DefaultEngineThreads      = 1
	DefaultEngineMaxDepth     = 30
	DefaultStartupTimeout     = 10 * time.Second
	DefaultMaxRestartAttempts = 3
	DefaultRestartBackoff     = 500 * time.Millisecond
	DefaultProbeDepth         = 1
	DefaultProbeTimeout       = 3 * time.Second
	DefaultProbeSchedule      = "@every 1m"

	// Queue defaults
	DefaultQueueCapacity = 256
	DefaultSubmitTimeout = 60 * time.Second

	// Analysis defaults
	DefaultDeepDepth    = 16
	DefaultShallowDepth = 4
	DefaultMaxPly       = 8
	DefaultMaxBranches  = 2
	DefaultMaxNodes     = 64

	// Weight defaults; tunable policy, see AnalysisConfig.Weights.
	DefaultEvalGapWeight    = 0.20
	DefaultMoveChoiceWeight = 25.0
	DefaultReplayGapWeight  = 0.15

	// Tactics defaults
	DefaultDefenseDepth   = 12
	DefaultMaxReplies     = 12
	DefaultMaxExchangePly = 16
	DefaultDecisiveScore  = 800

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "gambit"
	DefaultMetricsSubsystem = "queue"

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8713"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// DefaultWaitTimeBuckets are histogram buckets tuned for queue wait times:
// shallow probes land in milliseconds, deep multipv requests in tens of
// seconds behind a busy queue.
var DefaultWaitTimeBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0}

// ApplyDefaults fills in default values for any zero-valued configuration
// fields. It is called automatically by LoadConfig.
func ApplyDefaults(cfg *Config) {
	// Engine
	if cfg.Engine.Path == "" {
		cfg.Engine.Path = DefaultEnginePath
	}
	if cfg.Engine.HashMB == 0 {
		cfg.Engine.HashMB = DefaultEngineHashMB
	}
	if cfg.Engine.Threads == 0 {
		cfg.Engine.Threads = DefaultEngineThreads
	}
	if cfg.Engine.MaxDepth == 0 {
		cfg.Engine.MaxDepth = DefaultEngineMaxDepth
	}
	if cfg.Engine.StartupTimeout == 0 {
		cfg.Engine.StartupTimeout = DefaultStartupTimeout
	}
	if cfg.Engine.MaxRestartAttempts == 0 {
		cfg.Engine.MaxRestartAttempts = DefaultMaxRestartAttempts
	}
	if cfg.Engine.RestartBackoff == 0 {
		cfg.Engine.RestartBackoff = DefaultRestartBackoff
	}
	if cfg.Engine.ProbeDepth == 0 {
		cfg.Engine.ProbeDepth = DefaultProbeDepth
	}
	if cfg.Engine.ProbeTimeout == 0 {
		cfg.Engine.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Engine.ProbeSchedule == "" {
		cfg.Engine.ProbeSchedule = DefaultProbeSchedule
	}

	// Queue
	if cfg.Queue.Capacity == 0 {
		cfg.Queue.Capacity = DefaultQueueCapacity
	}
	if cfg.Queue.SubmitTimeout == 0 {
		cfg.Queue.SubmitTimeout = DefaultSubmitTimeout
	}

	// Analysis
	if cfg.Analysis.DeepDepth == 0 {
		cfg.Analysis.DeepDepth = DefaultDeepDepth
	}
	if cfg.Analysis.ShallowDepth == 0 {
		cfg.Analysis.ShallowDepth = DefaultShallowDepth
	}
	if cfg.Analysis.MaxPly == 0 {
		cfg.Analysis.MaxPly = DefaultMaxPly
	}
	if cfg.Analysis.MaxBranches == 0 {
		cfg.Analysis.MaxBranches = DefaultMaxBranches
	}
	if cfg.Analysis.MaxNodes == 0 {
		cfg.Analysis.MaxNodes = DefaultMaxNodes
	}
	if cfg.Analysis.Weights.EvalGap == 0 {
		cfg.Analysis.Weights.EvalGap = DefaultEvalGapWeight
	}
	if cfg.Analysis.Weights.MoveChoice == 0 {
		cfg.Analysis.Weights.MoveChoice = DefaultMoveChoiceWeight
	}
	if cfg.Analysis.Weights.ReplayGap == 0 {
		cfg.Analysis.Weights.ReplayGap = DefaultReplayGapWeight
	}

	// Tactics
	if cfg.Tactics.DefenseDepth == 0 {
		cfg.Tactics.DefenseDepth = DefaultDefenseDepth
	}
	if cfg.Tactics.MaxReplies == 0 {
		cfg.Tactics.MaxReplies = DefaultMaxReplies
	}
	if cfg.Tactics.MaxExchangePly == 0 {
		cfg.Tactics.MaxExchangePly = DefaultMaxExchangePly
	}
	if cfg.Tactics.DecisiveScore == 0 {
		cfg.Tactics.DecisiveScore = DefaultDecisiveScore
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.WaitTimeBuckets) == 0 {
		cfg.Telemetry.Metrics.WaitTimeBuckets = DefaultWaitTimeBuckets
	}

	// Server
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// DefaultConfig returns a fully defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}
