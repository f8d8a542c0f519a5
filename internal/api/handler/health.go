package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// DependencyCheck probes one backing service.
type DependencyCheck func(ctx context.Context) error

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// A failing required check (MongoDB) takes the service out of rotation with a
// 503. Optional checks (Redis) are reported but only mark the service as
// degraded.
type HealthDependenciesHandler struct {
	required map[string]DependencyCheck
	optional map[string]DependencyCheck
	timeout  time.Duration
}

func NewHealthDependenciesHandler(required, optional map[string]DependencyCheck) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{required: required, optional: optional, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status   string `json:"status"`
	Optional bool   `json:"optional,omitempty"`
	Error    string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.required)+len(h.optional))
	requiredOK := runChecks(ctx, h.required, false, deps)
	optionalOK := runChecks(ctx, h.optional, true, deps)

	status, httpStatus := "ok", http.StatusOK
	switch {
	case !requiredOK:
		status, httpStatus = "unavailable", http.StatusServiceUnavailable
	case !optionalOK:
		status = "degraded"
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// runChecks records the outcome of every check into deps and reports whether
// all of them passed.
func runChecks(ctx context.Context, checks map[string]DependencyCheck, optional bool, deps map[string]dependencyStatus) bool {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	for _, name := range names {
		if err := checks[name](ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Optional: optional, Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok", Optional: optional}
	}
	return healthy
}
