package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChecker_ReadinessAggregates(t *testing.T) {
	c := New(time.Second)
	c.Register("queue", func(context.Context) error { return nil })
	c.Register("config", func(context.Context) error { return nil })

	status := c.Readiness(context.Background())
	if status.Status != "ready" {
		t.Fatalf("status = %s, want ready", status.Status)
	}
	if len(status.Checks) != 2 {
		t.Errorf("checks = %d, want 2", len(status.Checks))
	}
}

func TestChecker_UnhealthyComponentDegrades(t *testing.T) {
	c := New(time.Second)
	c.Register("queue", func(context.Context) error { return errors.New("engine unavailable") })
	c.Register("config", func(context.Context) error { return nil })

	status := c.Readiness(context.Background())
	if status.Status != "degraded" {
		t.Fatalf("status = %s, want degraded", status.Status)
	}
	if status.Checks["queue"].Message != "engine unavailable" {
		t.Errorf("queue message = %q", status.Checks["queue"].Message)
	}
	if status.Checks["config"].Status != "ok" {
		t.Errorf("healthy component reported %q", status.Checks["config"].Status)
	}
}

func TestChecker_SlowProbeTimesOut(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Register("queue", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	status := c.Readiness(context.Background())
	if status.Status != "degraded" {
		t.Fatalf("status = %s, want degraded after timeout", status.Status)
	}
}

func TestReadinessHandler_StatusCodes(t *testing.T) {
	c := New(time.Second)
	healthy := true
	c.Register("queue", func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	})

	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthy readiness = %d, want 200", rec.Code)
	}

	healthy = false
	rec = httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded readiness = %d, want 503", rec.Code)
	}

	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if status.Status != "degraded" {
		t.Errorf("body status = %s, want degraded", status.Status)
	}
}

func TestLivenessHandler_AlwaysOK(t *testing.T) {
	c := New(time.Second)
	c.Register("queue", func(context.Context) error { return errors.New("down") })

	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("liveness = %d, want 200 regardless of components", rec.Code)
	}

	rec = httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST liveness = %d, want 405", rec.Code)
	}
}

func TestVersionHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	VersionHandler("1.2.3", "abc123", "2026-01-01T00:00:00Z")(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" {
		t.Errorf("unexpected version info: %+v", info)
	}
}
