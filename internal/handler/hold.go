package handler

import (
	"net/http" // HTTP status codes
	"time"     // RFC3339 formatting of expiry

	"github.com/iliyamo/trip-seat-booking/internal/engine" // engine provides the hold manager
	"github.com/labstack/echo/v4"                          // Echo web framework
)

// HoldHandler exposes seat holds to the request layer.  A hold
// temporarily reserves a single seat for the configured TTL; it is
// inventory-level, not session-scoped, so no ownership is checked on
// release.
type HoldHandler struct {
	Holds *engine.HoldManager // places holds and owns expiry timers
}

// NewHoldHandler constructs a HoldHandler.  The hold manager must be
// non-nil.
func NewHoldHandler(holds *engine.HoldManager) *HoldHandler {
	if holds == nil {
		panic("nil hold manager passed to NewHoldHandler")
	}
	return &HoldHandler{Holds: holds}
}

// PlaceHold handles POST /v1/trips/:id/hold.  The body names one
// seat; on success the seat is HELD for the hold TTL and the hold ID
// plus expiry is returned with 201.  A seat that is already held or
// booked yields 409.
func (h *HoldHandler) PlaceHold(c echo.Context) error {
	tripID := c.Param("id")
	if tripID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	var body struct {
		SeatID string `json:"seat_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SeatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}
	hold, err := h.Holds.PlaceHold(tripID, body.SeatID)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"hold_id":    hold.ID,
		"trip_id":    hold.TripID,
		"seat_id":    hold.SeatID,
		"expires_at": hold.ExpiresAt.Format(time.RFC3339),
	})
}

// ReleaseHold handles DELETE /v1/holds/:id.  Releasing is idempotent:
// an unknown, expired or already released hold still yields 204, so
// clients can retry the call safely.
func (h *HoldHandler) ReleaseHold(c echo.Context) error {
	holdID := c.Param("id")
	if holdID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hold id"})
	}
	h.Holds.ReleaseHold(holdID)
	return c.NoContent(http.StatusNoContent)
}
