package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// ProbeScheduler runs periodic health probes against the queue so the
// degraded state stays fresh even when no caller traffic arrives. Without
// it, a dead engine is only discovered by the next unlucky submitter.
type ProbeScheduler struct {
	queue    *Queue
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewProbeScheduler creates a scheduler driving HealthCheck on the given
// cron schedule. An empty schedule yields a scheduler whose Start is a
// no-op.
func NewProbeScheduler(queue *Queue, schedule string, logger *slog.Logger) *ProbeScheduler {
	if logger == nil {
		logger = slog.Default().With("component", "engine.probes")
	}
	return &ProbeScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins scheduled probing. The scheduler stops itself when ctx is
// cancelled.
func (s *ProbeScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("probe schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid probe schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.probe(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule probes: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("health probe scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *ProbeScheduler) probe(ctx context.Context) {
	if s.queue.HealthCheck(ctx) {
		s.logger.Debug("scheduled health probe ok")
		return
	}
	s.logger.Warn("scheduled health probe failed", "metrics", s.queue.Metrics())
}

// Stop stops the scheduler and waits for a running probe to finish.
func (s *ProbeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("health probe scheduler stopped")
	}
}
