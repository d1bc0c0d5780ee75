package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mercator-hq/gambit/pkg/config"
	"mercator-hq/gambit/pkg/confidence"
	"mercator-hq/gambit/pkg/engine"
	"mercator-hq/gambit/pkg/tactics"
	"mercator-hq/gambit/pkg/telemetry/health"
)

// Analyzer produces confidence trees. *confidence.Engine implements it.
type Analyzer interface {
	Analyze(ctx context.Context, fen string, baseline int) (*confidence.Tree, error)
}

// Validator judges tactical candidates. *tactics.Validator implements it.
type Validator interface {
	Validate(ctx context.Context, fen, candidate string) (*tactics.Report, error)
}

// QueueStats is the slice of the analysis queue the server surfaces.
// *engine.Queue implements it.
type QueueStats interface {
	Metrics() engine.Metrics
	HealthCheck(ctx context.Context) bool
}

// Server is the operational HTTP surface: analysis entry points, the queue
// metrics snapshot, Prometheus exposition, and health probes.
type Server struct {
	cfg       config.ServerConfig
	analyzer  Analyzer
	validator Validator
	queue     QueueStats
	checker   *health.Checker
	metrics   http.Handler
	logger    *slog.Logger

	version http.HandlerFunc

	httpServer   *http.Server
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// SetVersion installs build information served at /version. Without it the
// route is not mounted.
func (s *Server) SetVersion(version, commit, buildTime string) {
	s.version = health.VersionHandler(version, commit, buildTime)
}

// New creates a server. metricsHandler may be nil when metrics are
// disabled; the route is simply not mounted.
func New(cfg config.ServerConfig, analyzer Analyzer, validator Validator, queue QueueStats, metricsHandler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:        cfg,
		analyzer:   analyzer,
		validator:  validator,
		queue:      queue,
		checker:    health.New(0),
		metrics:    metricsHandler,
		logger:     logger.With("component", "server"),
		shutdownCh: make(chan struct{}),
	}
	s.checker.Register("queue", func(ctx context.Context) error {
		if !queue.HealthCheck(ctx) {
			return fmt.Errorf("analysis queue unhealthy")
		}
		return nil
	})
	return s
}

// Start listens and blocks until the context is canceled, a shutdown
// signal arrives, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.cfg.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, shutting down")
		return s.Shutdown(context.Background())
	case sig := <-sigCh:
		s.logger.Info("received signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errCh:
		return err
	case <-s.shutdownCh:
		return s.Shutdown(context.Background())
	}
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		close(s.shutdownCh)
		if s.httpServer == nil {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
		if shutdownErr := s.httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			err = fmt.Errorf("shutdown: %w", shutdownErr)
		}
		s.logger.Info("stopped")
	})
	return err
}

// Handler returns the route table, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/validate", s.handleValidate)
	mux.HandleFunc("/v1/queue/metrics", s.handleQueueMetrics)

	mux.HandleFunc("/healthz", s.checker.LivenessHandler())
	mux.HandleFunc("/readyz", s.checker.ReadinessHandler())
	if s.version != nil {
		mux.HandleFunc("/version", s.version)
	}
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}

	return s.withLogging(mux)
}

// withLogging records one line per request at debug level.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		s.logger.Debug("request served", "method", r.Method, "path", r.URL.Path)
	})
}
