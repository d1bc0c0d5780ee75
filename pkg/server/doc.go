// Package server exposes the analysis service over HTTP.
//
// Routes:
//
//	POST /v1/analyze        confidence tree for a position and baseline
//	POST /v1/validate       tactic verdict with its supporting line
//	GET  /v1/queue/metrics  queue counters snapshot as JSON
//	GET  /healthz           liveness probe
//	GET  /readyz            readiness probe, 503 while the queue is degraded
//	GET  /version           build information (when set)
//	GET  /metrics           Prometheus exposition (when metrics are enabled)
//
// The server blocks in Start until canceled or signaled, then drains
// in-flight requests within the configured shutdown timeout. Domain errors
// map onto status codes: invalid positions and illegal moves are 400, an
// engine that cannot be started is 503, anything unexpected is 500.
package server
