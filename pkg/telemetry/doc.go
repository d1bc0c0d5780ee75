// Package telemetry groups the observability subpackages.
//
// # Components
//
//   - logging: structured slog setup from configuration
//   - metrics: Prometheus collection for the analysis queue
//   - health: liveness, readiness, and version endpoints
//
// Each subpackage is wired independently; there is no shared telemetry
// object. The queue reports through the metrics.Collector observer, the
// server mounts the health handlers, and logging.Setup installs the
// process-wide default logger.
package telemetry
