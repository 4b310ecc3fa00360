package handler

import (
	"net/http" // HTTP status codes
	"time"     // RFC3339 formatting of timestamps

	"github.com/iliyamo/trip-seat-booking/internal/engine" // engine provides the booking ledger
	"github.com/iliyamo/trip-seat-booking/internal/model"  // model defines the booking record
	"github.com/labstack/echo/v4"                          // Echo web framework
)

// BookingHandler exposes booking creation, cancellation and listing
// to authenticated customers.  Identity comes from the JWT
// middleware; the ledger itself never infers a user.  Ownership of a
// booking is enforced here on cancellation (owner or ADMIN), not in
// the ledger.
type BookingHandler struct {
	Ledger *engine.Ledger // executes atomic booking transactions
}

// NewBookingHandler constructs a BookingHandler.  The ledger must be
// non-nil.
func NewBookingHandler(ledger *engine.Ledger) *BookingHandler {
	if ledger == nil {
		panic("nil ledger passed to NewBookingHandler")
	}
	return &BookingHandler{Ledger: ledger}
}

// bookingResponse shapes a booking for JSON responses.
func bookingResponse(b model.Booking) echo.Map {
	return echo.Map{
		"booking_id":         b.ID,
		"trip_id":            b.TripID,
		"seat_ids":           b.SeatIDs,
		"status":             string(b.Status),
		"total_amount_cents": b.TotalAmountCents,
		"created_at":         b.CreatedAt.Format(time.RFC3339),
	}
}

// CreateBooking handles POST /v1/bookings.  The seats are committed
// as one atomic group: when any requested seat is held by someone
// else's unexpired hold or already booked, the whole request fails
// with 409 and no seat is left transitioned.  Duplicate or empty
// seat lists fail with 400 before any inventory is touched.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		TripID      string   `json:"trip_id"`
		SeatIDs     []string `json:"seat_ids"`
		AmountCents uint32   `json:"amount_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TripID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trip_id is required"})
	}
	if len(body.SeatIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
	}
	booking, err := h.Ledger.CreateBooking(c.Request().Context(), userID, body.TripID, body.SeatIDs, body.AmountCents)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, bookingResponse(booking))
}

// CancelBooking handles DELETE /v1/bookings/:id.  Only the booking's
// owner or an ADMIN may cancel.  Cancellation returns every seat of
// the booking to AVAILABLE and is allowed exactly once; a second
// attempt yields 409.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID := c.Param("id")
	if bookingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	existing, err := h.Ledger.GetBooking(bookingID)
	if err != nil {
		return respondEngineError(c, err)
	}
	if existing.UserID != userID && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	cancelled, err := h.Ledger.CancelBooking(c.Request().Context(), bookingID)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, bookingResponse(cancelled))
}

// ListMyBookings handles GET /v1/my-bookings.  It returns all
// bookings of the authenticated user, newest first.  When none
// exist it returns an empty array.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings := h.Ledger.ListByUser(userID)
	items := make([]echo.Map, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, bookingResponse(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
