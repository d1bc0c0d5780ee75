// Package engine owns the external UCI engine process and serializes all
// access to it.
//
// # Overview
//
// A chess engine speaking the UCI protocol is a single line-oriented process
// that cannot service interleaved conversations: two goroutines writing
// "position"/"go" pairs concurrently corrupt its state or crash it. Queue
// solves this with one background worker that exclusively owns the process
// and services requests strictly in FIFO order:
//
//	q := engine.New(cfg.Engine, cfg.Queue, collector, nil)
//	defer q.Close()
//
//	res, err := q.Submit(ctx, fen, 16, 1)
//
// Many goroutines may call Submit concurrently; each blocks only until its
// own request completes.
//
// # Crash supervision
//
// Engine processes die: bad NNUE files, OOM kills, protocol
// desynchronization. The worker detects termination through the process's
// stdout reaching EOF or a search that never produces a bestmove, fails the
// single in-flight request with a TerminatedError, restarts the process, and
// resumes with the next request. The failed request is never retried
// automatically; that decision belongs to the caller, which knows whether
// the result still matters. When the restart budget is exhausted the queue
// degrades: HealthCheck reports false, Metrics.Degraded is set, and each
// subsequent submission triggers one fresh start attempt before failing
// fast.
//
// # Metrics and probing
//
// Metrics returns a torn-read-free snapshot of cumulative counters (total,
// failed, max depth, rolling average wait). ProbeScheduler keeps the health
// signal fresh on a cron schedule when no caller traffic arrives.
package engine
