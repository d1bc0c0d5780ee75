package engine

import (
	"sync"
	"time"
)

// stats holds the queue's cumulative counters. A single mutex guards every
// field so a snapshot can never observe a torn update; contention is
// irrelevant at the queue's throughput (one engine search per request).
type stats struct {
	mu sync.Mutex

	totalRequests  int64
	failedRequests int64
	maxQueueDepth  int
	totalWait      time.Duration
	completedCount int64
	processing     bool
}

func newStats() *stats {
	return &stats{}
}

// enqueued records a new submission and the queue depth observed at
// enqueue time.
func (s *stats) enqueued(depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests++
	if depth > s.maxQueueDepth {
		s.maxQueueDepth = depth
	}
}

// completed records a request leaving the queue, counting its total time
// from enqueue to completion toward the rolling average.
func (s *stats) completed(enqueued time.Time, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completedCount++
	s.totalWait += time.Since(enqueued)
	if failed {
		s.failedRequests++
	}
}

func (s *stats) setProcessing(p bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = p
}

// snapshot returns a consistent copy. CurrentQueueSize and Degraded are
// filled in by the queue, which owns those.
func (s *stats) snapshot() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Metrics{
		TotalRequests:  s.totalRequests,
		FailedRequests: s.failedRequests,
		MaxQueueDepth:  s.maxQueueDepth,
		Processing:     s.processing,
	}
	if s.completedCount > 0 {
		m.AvgWaitTimeMS = float64(s.totalWait.Milliseconds()) / float64(s.completedCount)
	}
	return m
}

// reset zeroes all counters. Explicit operator action only; the queue never
// resets itself.
func (s *stats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests = 0
	s.failedRequests = 0
	s.maxQueueDepth = 0
	s.totalWait = 0
	s.completedCount = 0
}
