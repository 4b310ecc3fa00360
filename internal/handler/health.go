package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers load balancer and monitoring probes.  It reports
// liveness only; the seat engine is in-memory and is alive whenever
// the process is, so there is no deeper readiness to check.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
