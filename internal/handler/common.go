package handler // handler defines http handlers

import (
	"errors"       // errors provides sentinel values used in getUserID
	"log"          // log surfaces invariant violations
	"net/http"     // HTTP status codes
	"strconv"      // strconv converts strings to numeric types
	"strings"      // strings provides trimming and case helpers

	"github.com/iliyamo/trip-seat-booking/internal/engine" // engine defines sentinel errors
	"github.com/labstack/echo/v4"                          // echo defines request context types
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the authenticated caller carries the ADMIN
// role.  Role claims are injected by the JWT middleware.
func isAdmin(c echo.Context) bool {
	if role, ok := c.Get("role").(string); ok {
		return strings.EqualFold(role, "ADMIN")
	}
	return false
}

// respondEngineError translates an engine sentinel error into the
// matching HTTP response.  SeatUnavailable is the expected contention
// outcome and maps to 409 so clients re-query availability;
// InvariantViolation indicates a bug and is logged before the 500.
func respondEngineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrVehicleNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
	case errors.Is(err, engine.ErrTripNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
	case errors.Is(err, engine.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, engine.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	case errors.Is(err, engine.ErrSeatUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat unavailable"})
	case errors.Is(err, engine.ErrInvalidState):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
	case errors.Is(err, engine.ErrInvariantViolation):
		log.Printf("handler: invariant violation: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal inconsistency"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
