package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trip-seat-booking/internal/engine"
	"github.com/iliyamo/trip-seat-booking/internal/model"
)

func TestPlaceHoldBlocksSeat(t *testing.T) {
	te := newTestEngine(t, time.Minute)
	trip := te.mustTrip(t)

	hold, err := te.holds.PlaceHold(trip.ID, "1A")
	require.NoError(t, err)
	assert.NotEmpty(t, hold.ID)
	assert.Equal(t, "1A", hold.SeatID)
	assert.False(t, hold.ExpiresAt.Before(time.Now().UTC()), "expiry must be in the future")

	// The held seat blocks further holds and direct bookings.
	_, err = te.holds.PlaceHold(trip.ID, "1A")
	require.ErrorIs(t, err, engine.ErrSeatUnavailable)
	requireCounterConsistent(t, te.store, trip.ID)
	assert.Equal(t, 1, te.events.countByStatus(model.SeatHeld))
}

func TestHoldExpiryReleasesSeat(t *testing.T) {
	te := newTestEngine(t, 40*time.Millisecond)
	trip := te.mustTrip(t)

	_, err := te.holds.PlaceHold(trip.ID, "1A")
	require.NoError(t, err)
	assert.False(t, seatStatusOf(t, te.store, trip.ID, "1A"))

	// After the TTL the timer fires and the seat returns to
	// AVAILABLE on its own.
	require.Eventually(t, func() bool {
		return seatStatusOf(t, te.store, trip.ID, "1A")
	}, 2*time.Second, 10*time.Millisecond, "seat must become available after hold expiry")
	requireCounterConsistent(t, te.store, trip.ID)
	require.Eventually(t, func() bool {
		return te.events.countByStatus(model.SeatAvailable) == 1
	}, time.Second, 5*time.Millisecond, "expiry must emit exactly one AVAILABLE event")

	// The expired seat is immediately bookable.
	_, err = te.ledger.CreateBooking(context.Background(), 1, trip.ID, []string{"1A"}, 1500)
	require.NoError(t, err)
}

func TestReleaseHoldIsIdempotent(t *testing.T) {
	te := newTestEngine(t, time.Minute)
	trip := te.mustTrip(t)

	hold, err := te.holds.PlaceHold(trip.ID, "1A")
	require.NoError(t, err)

	te.holds.ReleaseHold(hold.ID)
	assert.True(t, seatStatusOf(t, te.store, trip.ID, "1A"))

	// Releasing again, and releasing a hold that never existed, are
	// both no-ops with no counter movement.
	te.holds.ReleaseHold(hold.ID)
	te.holds.ReleaseHold("no-such-hold")
	snapshot, _, err := te.store.Availability(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), snapshot.AvailableCount)
	requireCounterConsistent(t, te.store, trip.ID)
	assert.Equal(t, 1, te.events.countByStatus(model.SeatAvailable), "one release, one event")
}

func TestReleaseAfterExpiryDoesNotDoubleIncrement(t *testing.T) {
	te := newTestEngine(t, 40*time.Millisecond)
	trip := te.mustTrip(t)

	hold, err := te.holds.PlaceHold(trip.ID, "1A")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return seatStatusOf(t, te.store, trip.ID, "1A")
	}, 2*time.Second, 10*time.Millisecond)

	te.holds.ReleaseHold(hold.ID)
	snapshot, _, err := te.store.Availability(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), snapshot.AvailableCount)
	requireCounterConsistent(t, te.store, trip.ID)
}

func TestCommitSupersedesHold(t *testing.T) {
	te := newTestEngine(t, 60*time.Millisecond)
	trip := te.mustTrip(t)

	_, err := te.holds.PlaceHold(trip.ID, "1A")
	require.NoError(t, err)

	// Holds are inventory-level, not session-scoped: a booking may
	// supersede a hold it does not own.
	booking, err := te.ledger.CreateBooking(context.Background(), 1, trip.ID, []string{"1A"}, 1500)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, booking.Status)

	// Wait well past the TTL: the superseded timer must not release
	// the booked seat back to AVAILABLE.
	time.Sleep(200 * time.Millisecond)
	assert.False(t, seatStatusOf(t, te.store, trip.ID, "1A"), "booked seat must stay booked after the old timer would have fired")
	requireCounterConsistent(t, te.store, trip.ID)
}

func TestPlaceHoldOnBookedSeat(t *testing.T) {
	te := newTestEngine(t, time.Minute)
	trip := te.mustTrip(t)
	_, err := te.ledger.CreateBooking(context.Background(), 1, trip.ID, []string{"1A"}, 1500)
	require.NoError(t, err)

	_, err = te.holds.PlaceHold(trip.ID, "1A")
	require.ErrorIs(t, err, engine.ErrSeatUnavailable)
}

func TestPlaceHoldUnknownTrip(t *testing.T) {
	te := newTestEngine(t, time.Minute)
	_, err := te.holds.PlaceHold("no-such-trip", "1A")
	require.ErrorIs(t, err, engine.ErrTripNotFound)
}
