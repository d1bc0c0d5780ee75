package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/gambit/pkg/config"
)

// Collector owns the Prometheus metrics for the analysis queue and
// implements engine.Observer. It registers everything against its own
// registry so tests and embedders never collide with the global one.
//
// Metrics:
//   - gambit_queue_requests_total{status}: completed requests by outcome
//   - gambit_queue_wait_seconds: time from enqueue to completion
//   - gambit_queue_depth: requests currently waiting
//   - gambit_queue_degraded: 1 while the queue cannot keep an engine alive
//   - gambit_queue_engine_restarts_total{result}: engine restart attempts
type Collector struct {
	cfg      config.MetricsConfig
	registry *prometheus.Registry

	requestsTotal *prometheus.CounterVec
	waitSeconds   prometheus.Histogram
	queueDepth    prometheus.Gauge
	degraded      prometheus.Gauge
	restartsTotal *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics. If registry
// is nil a fresh one is created.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "gambit"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "queue"
	}
	if len(cfg.WaitTimeBuckets) == 0 {
		cfg.WaitTimeBuckets = config.DefaultWaitTimeBuckets
	}

	c := &Collector{
		cfg:      cfg,
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of analysis requests completed, by outcome",
			},
			[]string{"status"},
		),

		waitSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "wait_seconds",
				Help:      "Time from enqueue to completion, including service",
				Buckets:   cfg.WaitTimeBuckets,
			},
		),

		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "depth",
				Help:      "Requests currently waiting for the engine",
			},
		),

		degraded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "degraded",
				Help:      "1 while the queue cannot keep its engine process alive",
			},
		),

		restartsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "engine_restarts_total",
				Help:      "Engine restart attempts, by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.waitSeconds,
		c.queueDepth,
		c.degraded,
		c.restartsTotal,
	)
	return c
}

// RecordRequest implements engine.Observer.
func (c *Collector) RecordRequest(status string, wait time.Duration) {
	if !c.cfg.Enabled {
		return
	}
	c.requestsTotal.WithLabelValues(status).Inc()
	c.waitSeconds.Observe(wait.Seconds())
}

// SetQueueDepth implements engine.Observer.
func (c *Collector) SetQueueDepth(n int) {
	if !c.cfg.Enabled {
		return
	}
	c.queueDepth.Set(float64(n))
}

// SetDegraded implements engine.Observer.
func (c *Collector) SetDegraded(degraded bool) {
	if !c.cfg.Enabled {
		return
	}
	if degraded {
		c.degraded.Set(1)
	} else {
		c.degraded.Set(0)
	}
}

// RecordRestart implements engine.Observer.
func (c *Collector) RecordRestart(success bool) {
	if !c.cfg.Enabled {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	c.restartsTotal.WithLabelValues(result).Inc()
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
