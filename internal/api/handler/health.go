package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// Pinger is any dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionBackend is the session store as seen by the readiness probe.
type SessionBackend interface {
	Pinger
	Len() int
}

// HealthHandler serves GET /health (liveness) and GET /health/ready (readiness).
type HealthHandler struct {
	sessions SessionBackend
	deps     map[string]Pinger
}

// NewHealthHandler returns a HealthHandler. deps are optional extra
// dependencies checked by Readiness, keyed by name.
func NewHealthHandler(sessions SessionBackend, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{sessions: sessions, deps: deps}
}

// Liveness returns 200 immediately; confirms the process is alive.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Sessions     int                         `json:"sessions"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness checks the session snapshot backend and every extra dependency.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  readinessResponse
// @Failure  503  {object}  readinessResponse
// @Router   /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps)+1)
	healthy := true

	check := func(name string, p Pinger) {
		if err := p.Ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			return
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	check("sessions", h.sessions)
	for name, p := range h.deps {
		check(name, p)
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Sessions:     h.sessions.Len(),
		Dependencies: deps,
	})
}
