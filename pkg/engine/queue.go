package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/notnil/chess"

	"mercator-hq/gambit/pkg/config"
)

// startPositionFEN is the standard initial position, used by health probes.
const startPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Queue serializes all oracle access. Arbitrarily many goroutines may call
// Submit concurrently; a single background worker services requests in FIFO
// order against the one engine process it exclusively owns. If the process
// dies mid-request, the worker fails that request with a TerminatedError,
// restarts the process, and carries on with the next request; the crash's
// blast radius is exactly one request.
//
// After the configured number of consecutive failed restarts the queue is
// degraded: HealthCheck reports false, Metrics.Degraded is set, and each
// subsequent request triggers a single fresh start attempt, failing fast if
// it does not succeed.
type Queue struct {
	engineCfg config.EngineConfig
	queueCfg  config.QueueConfig

	factory  evaluatorFactory
	requests chan *request
	stats    *stats
	observer Observer
	logger   *slog.Logger

	degraded atomic.Bool

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a queue that owns a UCI engine process described by engineCfg
// and starts its worker. The engine process itself is started lazily on the
// first submission, so construction is cheap and never blocks on the binary.
//
// observer may be nil.
func New(engineCfg config.EngineConfig, queueCfg config.QueueConfig, observer Observer, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default().With("component", "engine.queue")
	}
	factory := func() (evaluator, error) {
		return startUCIProcess(engineCfg, logger)
	}
	return newWithFactory(engineCfg, queueCfg, factory, observer, logger)
}

// newWithFactory is the seam tests use to substitute a scripted evaluator.
func newWithFactory(engineCfg config.EngineConfig, queueCfg config.QueueConfig, factory evaluatorFactory, observer Observer, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default().With("component", "engine.queue")
	}
	q := &Queue{
		engineCfg: engineCfg,
		queueCfg:  queueCfg,
		factory:   factory,
		requests:  make(chan *request, queueCfg.Capacity),
		stats:     newStats(),
		observer:  observer,
		logger:    logger,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	go q.worker()
	return q
}

// Submit enqueues an analysis request and blocks until its result is
// available, the context expires, or the queue closes. The position is
// validated before queueing; a malformed FEN never reaches the engine.
//
// Requests are serviced strictly in enqueue order, but each caller is
// unblocked independently as its own request completes. A caller whose
// context expires while its request is still waiting abandons it; the worker
// skips abandoned requests without disturbing the order of others. A request
// already handed to the engine is not interruptible and runs to completion,
// with the result discarded.
func (q *Queue) Submit(ctx context.Context, fen string, depth, multiPV int) (*Result, error) {
	if _, err := chess.FEN(fen); err != nil {
		return nil, &InvalidPositionError{FEN: fen, Cause: err}
	}
	if depth < 1 {
		depth = 1
	}
	if depth > q.engineCfg.MaxDepth {
		// Degrade gracefully: clamp rather than reject.
		depth = q.engineCfg.MaxDepth
	}
	if multiPV < 1 {
		multiPV = 1
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && q.queueCfg.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.queueCfg.SubmitTimeout)
		defer cancel()
	}

	req := &request{
		fen:      fen,
		depth:    depth,
		multiPV:  multiPV,
		ctx:      ctx,
		enqueued: time.Now(),
		resultCh: make(chan outcome, 1),
	}

	select {
	case q.requests <- req:
		q.stats.enqueued(len(q.requests))
		if q.observer != nil {
			q.observer.SetQueueDepth(len(q.requests))
		}
	case <-ctx.Done():
		return nil, &TimeoutError{Elapsed: time.Since(req.enqueued), Cause: ctx.Err()}
	case <-q.stopCh:
		return nil, ErrQueueClosed
	}

	select {
	case out := <-req.resultCh:
		return out.result, out.err
	case <-ctx.Done():
		// The worker will observe the dead context and skip or discard.
		return nil, &TimeoutError{Elapsed: time.Since(req.enqueued), Cause: ctx.Err()}
	case <-q.stopCh:
		return nil, ErrQueueClosed
	}
}

// HealthCheck issues a cheap probe request and reports whether the oracle
// answered within the probe timeout. A degraded queue reports false without
// probing.
func (q *Queue) HealthCheck(ctx context.Context) bool {
	if q.isDegraded() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, q.engineCfg.ProbeTimeout)
	defer cancel()

	_, err := q.Submit(ctx, startPositionFEN, q.engineCfg.ProbeDepth, 1)
	return err == nil
}

// Metrics returns a consistent snapshot of queue counters. Safe to call
// concurrently with Submit.
func (q *Queue) Metrics() Metrics {
	m := q.stats.snapshot()
	m.CurrentQueueSize = len(q.requests)
	m.Degraded = q.isDegraded()
	return m
}

// ResetMetrics zeroes the cumulative counters. Operator action only.
func (q *Queue) ResetMetrics() {
	q.stats.reset()
}

// Close stops the worker and tears down the engine process. In-flight work
// completes first; waiting requests fail with ErrQueueClosed.
func (q *Queue) Close() {
	q.stopOnce.Do(func() {
		close(q.stopCh)
	})
	<-q.doneCh
}

// worker is the queue's single consumer. It is the only goroutine that ever
// touches the engine process.
func (q *Queue) worker() {
	defer close(q.doneCh)

	var eng evaluator
	defer func() {
		if eng != nil {
			eng.Close()
		}
	}()

	for {
		select {
		case <-q.stopCh:
			return
		case req := <-q.requests:
			if q.observer != nil {
				q.observer.SetQueueDepth(len(q.requests))
			}
			q.serve(&eng, req)
		}
	}
}

// serve handles one request end to end, including crash recovery.
func (q *Queue) serve(eng *evaluator, req *request) {
	// Abandoned while waiting: a timed-out request counts as failed, same
	// as a queue-detected failure.
	if req.ctx.Err() != nil {
		q.stats.completed(req.enqueued, true)
		q.finish(req, outcome{err: &TimeoutError{Elapsed: time.Since(req.enqueued), Cause: req.ctx.Err()}}, "canceled")
		return
	}

	q.stats.setProcessing(true)
	defer q.stats.setProcessing(false)

	if *eng == nil {
		e, err := q.startBackend()
		if err != nil {
			q.stats.completed(req.enqueued, true)
			q.finish(req, outcome{err: err}, "failed")
			return
		}
		*eng = e
	}

	res, err := (*eng).Evaluate(req.fen, req.depth, req.multiPV)
	if err == nil {
		q.stats.completed(req.enqueued, false)
		q.finish(req, outcome{result: res}, "success")
		return
	}

	q.stats.completed(req.enqueued, true)
	q.finish(req, outcome{err: err}, "failed")

	var term *TerminatedError
	if errors.As(err, &term) {
		q.logger.Warn("engine terminated mid-request, restarting",
			"stage", term.Stage, "fen", req.fen, "depth", req.depth)
		(*eng).Close()
		*eng = q.restartBackend()
	}
}

// startBackend attempts a single engine start. Used when no process exists:
// first request ever, or every request while degraded.
func (q *Queue) startBackend() (evaluator, error) {
	e, err := q.factory()
	if q.observer != nil {
		q.observer.RecordRestart(err == nil)
	}
	if err != nil {
		q.setDegraded(true)
		return nil, &StartError{Path: q.engineCfg.Path, Attempts: 1, Cause: err}
	}
	q.setDegraded(false)
	return e, nil
}

// restartBackend retries the factory up to the configured attempt budget
// with backoff between attempts. Exhausting the budget leaves the queue
// degraded with no backend; later requests fall back to startBackend.
func (q *Queue) restartBackend() evaluator {
	var lastErr error
	for attempt := 1; attempt <= q.engineCfg.MaxRestartAttempts; attempt++ {
		e, err := q.factory()
		if q.observer != nil {
			q.observer.RecordRestart(err == nil)
		}
		if err == nil {
			q.setDegraded(false)
			q.logger.Info("engine restarted", "attempt", attempt)
			return e
		}
		lastErr = err
		q.logger.Warn("engine restart attempt failed", "attempt", attempt, "error", err)

		select {
		case <-time.After(q.engineCfg.RestartBackoff):
		case <-q.stopCh:
			return nil
		}
	}

	q.setDegraded(true)
	q.logger.Error("engine restart budget exhausted, queue degraded",
		"attempts", q.engineCfg.MaxRestartAttempts, "error", lastErr)
	return nil
}

// finish publishes the outcome to the submitter. The result channel is
// buffered, so an abandoned submitter never blocks the worker.
func (q *Queue) finish(req *request, out outcome, status string) {
	req.resultCh <- out
	if q.observer != nil {
		q.observer.RecordRequest(status, time.Since(req.enqueued))
	}
}

func (q *Queue) setDegraded(d bool) {
	prev := q.degraded.Swap(d)
	if q.observer != nil && prev != d {
		q.observer.SetDegraded(d)
	}
}

func (q *Queue) isDegraded() bool {
	return q.degraded.Load()
}
