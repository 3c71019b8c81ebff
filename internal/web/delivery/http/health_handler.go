package http

import (
	"net/http"

	"github.com/arpansethi30/finagent/internal/web/service"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness and backend status endpoints.
type HealthHandler struct {
	healthService service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// RegisterRoutes registers the backend status route to the Echo group.
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/backend/health", h.BackendHealth)
}

// Healthz reports liveness of this service.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// BackendHealth reports the latest cached status of the analytics backend.
func (h *HealthHandler) BackendHealth(c echo.Context) error {
	status := h.healthService.Status()
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}
