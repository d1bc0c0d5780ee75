package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that behavior.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention GAMBIT_SECTION_FIELD (e.g., GAMBIT_ENGINE_PATH) and always take
// precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format GAMBIT_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Engine overrides
	if val := os.Getenv("GAMBIT_ENGINE_PATH"); val != "" {
		cfg.Engine.Path = val
	}
	if val := os.Getenv("GAMBIT_ENGINE_HASH_MB"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.HashMB = i
		}
	}
	if val := os.Getenv("GAMBIT_ENGINE_THREADS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.Threads = i
		}
	}
	if val := os.Getenv("GAMBIT_ENGINE_MAX_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.MaxDepth = i
		}
	}
	if val := os.Getenv("GAMBIT_ENGINE_PROBE_SCHEDULE"); val != "" {
		cfg.Engine.ProbeSchedule = val
	}

	// Queue overrides
	if val := os.Getenv("GAMBIT_QUEUE_CAPACITY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Queue.Capacity = i
		}
	}
	if val := os.Getenv("GAMBIT_QUEUE_SUBMIT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Queue.SubmitTimeout = d
		}
	}

	// Analysis overrides
	if val := os.Getenv("GAMBIT_ANALYSIS_DEEP_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Analysis.DeepDepth = i
		}
	}
	if val := os.Getenv("GAMBIT_ANALYSIS_SHALLOW_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Analysis.ShallowDepth = i
		}
	}
	if val := os.Getenv("GAMBIT_ANALYSIS_MAX_PLY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Analysis.MaxPly = i
		}
	}

	// Server overrides
	if val := os.Getenv("GAMBIT_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}

	// Telemetry overrides
	if val := os.Getenv("GAMBIT_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("GAMBIT_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
}
