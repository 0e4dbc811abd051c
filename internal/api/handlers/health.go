package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	inv InventoryReader
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(inv InventoryReader) *HealthHandler {
	return &HealthHandler{inv: inv}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 once a listing collection has loaded, 503 otherwise.
// A refresh failure after a successful load does not make the service unready.
func (h *HealthHandler) Readyz(c echo.Context) error {
	switch h.inv.Snapshot().Status {
	case domain.LoadReady:
		return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
	case domain.LoadFailed:
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	default:
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "loading"})
	}
}

// RegisterHealthRoutes registers the probe endpoints directly on Echo so
// they stay out of the OpenAPI document.
func RegisterHealthRoutes(e *echo.Echo, h *HealthHandler) {
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
}
