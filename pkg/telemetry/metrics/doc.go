// Package metrics exports the analysis queue's operational counters as
// Prometheus metrics.
//
// The Collector implements the queue's Observer callbacks, so wiring is a
// single argument at queue construction. All metrics live in a dedicated
// registry exposed through Handler; nothing touches the global Prometheus
// registry. A disabled collector keeps accepting callbacks and records
// nothing.
package metrics
