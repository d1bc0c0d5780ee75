// Package health serves liveness and readiness probes for the analysis
// service.
//
// Liveness only says the process is up. Readiness runs registered component
// probes, the analysis queue's engine probe chief among them, and reports
// 503 while any component is unhealthy, which is how a degraded queue is
// surfaced to orchestration without failing every caller.
package health
