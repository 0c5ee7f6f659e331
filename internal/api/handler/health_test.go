package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubBackend struct {
	err error
	n   int
}

func (b stubBackend) Ping(context.Context) error { return b.err }
func (b stubBackend) Len() int                   { return b.n }

func readiness(t *testing.T, h *HealthHandler) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler(stubBackend{}, nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness_OK(t *testing.T) {
	h := NewHealthHandler(stubBackend{n: 3}, map[string]Pinger{"mongodb": stubBackend{}})

	code, resp := readiness(t, h)
	if code != http.StatusOK || resp.Status != "ok" || resp.Sessions != 3 {
		t.Fatalf("unexpected readiness %d %+v", code, resp)
	}
	if resp.Dependencies["sessions"].Status != "ok" || resp.Dependencies["mongodb"].Status != "ok" {
		t.Fatalf("unexpected dependencies %+v", resp.Dependencies)
	}
}

func TestHealthHandler_Readiness_Degraded(t *testing.T) {
	h := NewHealthHandler(stubBackend{}, map[string]Pinger{"mongodb": stubBackend{err: errors.New("no reachable servers")}})

	code, resp := readiness(t, h)
	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("unexpected readiness %d %+v", code, resp)
	}
	if dep := resp.Dependencies["mongodb"]; dep.Status != "unhealthy" || dep.Error != "no reachable servers" {
		t.Fatalf("unexpected mongodb status %+v", dep)
	}
}
