package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports whether the data backend is reachable.
type HealthChecker interface {
	Healthy() bool
}

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// Health returns a handler for GET /health. A nil checker means the backend
// has no link to lose.
func Health(backend string, checker HealthChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if checker != nil && !checker.Healthy() {
			return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "degraded", Backend: backend})
		}
		return c.JSON(http.StatusOK, healthResponse{Status: "ok", Backend: backend})
	}
}
