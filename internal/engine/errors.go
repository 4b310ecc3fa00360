// Package engine implements the seat inventory and booking
// consistency core: the per-trip seat state machine, hold expiry
// timers, and the atomic booking/cancellation transactions that
// mutate seat state and the available-seat counter together.  All
// inventory state is owned by this package and mutated only through
// the transition operations it exposes; callers never see raw maps.
package engine

import "errors"

// Sentinel errors returned by the engine.  Handlers translate these
// into HTTP status codes; none of them are retried internally.
var (
	// ErrVehicleNotFound is returned when a trip is requested for a
	// vehicle that does not exist in the catalog.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrTripNotFound is returned when an operation references a trip
	// that has never been materialized.
	ErrTripNotFound = errors.New("trip not found")

	// ErrBookingNotFound is returned when a booking lookup or
	// cancellation references an unknown booking ID.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidRequest is returned for malformed input, such as an
	// empty or duplicate-containing seat list.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSeatUnavailable is returned when a targeted seat cannot be
	// transitioned because it is held or booked.  This is the
	// expected, frequent contention outcome and is recoverable by
	// the caller.
	ErrSeatUnavailable = errors.New("seat unavailable")

	// ErrInvalidState is returned when operating on a booking that is
	// already cancelled.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvariantViolation signals that an internal consistency
	// check failed.  It should be unreachable in correct operation;
	// seeing it indicates a bug, not a user error.
	ErrInvariantViolation = errors.New("invariant violation")
)
