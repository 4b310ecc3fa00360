package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/trip-seat-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/trip-seat-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  Seat availability is readable by guests so they can
// preview a trip's seat map before logging in to hold or book.
func RegisterPublic(e *echo.Echo, t *handler.TripHandler) {
	// Materialize (or fetch) the trip for a vehicle and date.
	e.POST("/v1/trips", t.CreateTrip)
	// Live seat map with per-seat availability for a trip.
	e.GET("/v1/trips/:id/seats", t.GetSeatAvailability)
}

// RegisterBooking registers the authenticated booking surface: seat holds,
// bookings and the caller's booking list.  All routes require a valid
// access token; the JWTAuth middleware extracts the user ID and role that
// the handlers rely on.  Token issuance is owned by an external identity
// service — this API only verifies.
func RegisterBooking(e *echo.Echo, h *handler.HoldHandler, b *handler.BookingHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	auth := e.Group("/v1")
	// Validate bearer tokens and expose user_id/role on the context.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Customers and admins may hold and book; the cancel handler applies
	// the owner-or-admin rule itself.
	auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	// Optional middleware (e.g. the redis rate limiter) applies to the
	// whole booking surface.
	for _, m := range extra {
		auth.Use(m)
	}

	// Temporarily hold one seat on a trip.
	auth.POST("/trips/:id/hold", h.PlaceHold)
	// Release a hold; idempotent, safe to retry.
	auth.DELETE("/holds/:id", h.ReleaseHold)
	// Commit a booking for one or more seats atomically.
	auth.POST("/bookings", b.CreateBooking)
	// Cancel a confirmed booking (owner or ADMIN only).
	auth.DELETE("/bookings/:id", b.CancelBooking)
	// List the caller's bookings.
	auth.GET("/my-bookings", b.ListMyBookings)
}
