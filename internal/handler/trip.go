package handler

import (
	"net/http" // HTTP status codes
	"time"     // travel date validation

	"github.com/iliyamo/trip-seat-booking/internal/engine" // engine provides the registry and store
	"github.com/labstack/echo/v4"                          // Echo web framework
)

// TripHandler exposes trip materialization and seat availability to
// the request layer.  Both operations are synchronous reads against
// the engine; availability is served straight from the seat state
// store, never recomputed from booking records.
type TripHandler struct {
	Registry *engine.Registry // lazily materializes trips
	Store    *engine.Store    // availability snapshots
}

// NewTripHandler constructs a TripHandler with the provided engine
// components.  All dependencies must be non-nil.
func NewTripHandler(registry *engine.Registry, store *engine.Store) *TripHandler {
	if registry == nil || store == nil {
		panic("nil dependency passed to NewTripHandler")
	}
	return &TripHandler{Registry: registry, Store: store}
}

// CreateTrip handles POST /v1/trips.  The body carries a vehicle ID
// and a travel date; the call returns the existing trip for that
// pair or materializes it on first access.  Repeated and concurrent
// calls for the same pair always yield the same trip ID.
func (h *TripHandler) CreateTrip(c echo.Context) error {
	var body struct {
		VehicleID uint64 `json:"vehicle_id"`
		Date      string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.VehicleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_id is required"})
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	trip, err := h.Registry.GetOrCreate(c.Request().Context(), body.VehicleID, body.Date)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"trip_id":         trip.ID,
		"vehicle_id":      trip.VehicleID,
		"date":            trip.Date,
		"total_seats":     trip.TotalSeats,
		"available_count": trip.AvailableCount,
	})
}

// GetSeatAvailability handles GET /v1/trips/:id/seats.  It returns
// the full seat map of the trip in layout order together with the
// current available counter.  The snapshot is taken atomically, so a
// failed hold or booking attempt is never visible here.
func (h *TripHandler) GetSeatAvailability(c echo.Context) error {
	tripID := c.Param("id")
	if tripID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	trip, seats, err := h.Store.Availability(tripID)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"trip_id":         trip.ID,
		"available_count": trip.AvailableCount,
		"items":           seats,
	})
}
