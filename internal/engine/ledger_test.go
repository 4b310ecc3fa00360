package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trip-seat-booking/internal/engine"
	"github.com/iliyamo/trip-seat-booking/internal/model"
)

func TestCreateBookingValidatesSeatList(t *testing.T) {
	te := newTestEngine(t, 0)
	trip := te.mustTrip(t)
	ctx := context.Background()

	_, err := te.ledger.CreateBooking(ctx, 1, trip.ID, nil, 0)
	require.ErrorIs(t, err, engine.ErrInvalidRequest)

	_, err = te.ledger.CreateBooking(ctx, 1, trip.ID, []string{"1A", "1A"}, 0)
	require.ErrorIs(t, err, engine.ErrInvalidRequest)

	_, err = te.ledger.CreateBooking(ctx, 1, trip.ID, []string{"1A", ""}, 0)
	require.ErrorIs(t, err, engine.ErrInvalidRequest)

	// Validation failures never touch the inventory.
	snapshot, _, err := te.store.Availability(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), snapshot.AvailableCount)
}

func TestCreateBookingUnknownTrip(t *testing.T) {
	te := newTestEngine(t, 0)
	_, err := te.ledger.CreateBooking(context.Background(), 1, "no-such-trip", []string{"1A"}, 0)
	require.ErrorIs(t, err, engine.ErrTripNotFound)
}

func TestCreateBookingSuccess(t *testing.T) {
	te := newTestEngine(t, 0)
	trip := te.mustTrip(t)

	booking, err := te.ledger.CreateBooking(context.Background(), 42, trip.ID, []string{"1A", "1B"}, 3000)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), booking.UserID)
	assert.Equal(t, model.BookingConfirmed, booking.Status)
	assert.Equal(t, uint32(3000), booking.TotalAmountCents)
	assert.Equal(t, []string{"1A", "1B"}, booking.SeatIDs)

	requireCounterConsistent(t, te.store, trip.ID)
	snapshot, _, err := te.store.Availability(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), snapshot.AvailableCount)

	// One BOOKED event per seat, in commit order.
	events := te.events.all()
	require.Len(t, events, 2)
	assert.Equal(t, "1A", events[0].SeatID)
	assert.Equal(t, "1B", events[1].SeatID)
	for _, ev := range events {
		assert.Equal(t, model.SeatBooked, ev.Status)
		assert.Equal(t, trip.ID, ev.TripID)
	}

	// Write-through archive saw the booking.
	te.archive.mu.Lock()
	defer te.archive.mu.Unlock()
	require.Len(t, te.archive.saved, 1)
	assert.Equal(t, booking.ID, te.archive.saved[0].ID)
}

func TestCreateBookingAtomicFailureRollsBack(t *testing.T) {
	te := newTestEngine(t, 0)
	trip := te.mustTrip(t)
	ctx := context.Background()

	_, err := te.ledger.CreateBooking(ctx, 1, trip.ID, []string{"2B"}, 1000)
	require.NoError(t, err)

	// Booking {2A, 2B} must fail as a unit and leave 2A untouched.
	_, err = te.ledger.CreateBooking(ctx, 2, trip.ID, []string{"2A", "2B"}, 2000)
	require.ErrorIs(t, err, engine.ErrSeatUnavailable)

	assert.True(t, seatStatusOf(t, te.store, trip.ID, "2A"))
	requireCounterConsistent(t, te.store, trip.ID)

	// No booking record was created for the failed attempt.
	assert.Len(t, te.ledger.ListByUser(2), 0)
}

func TestConcurrentBookingsSingleSeat(t *testing.T) {
	te := newTestEngine(t, 0)
	trip := te.mustTrip(t)

	const callers = 32
	results := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := te.ledger.CreateBooking(context.Background(), uint64(i+1), trip.ID, []string{"1A"}, 1500)
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, engine.ErrSeatUnavailable):
			conflicts++
		default:
			t.Fatalf("unexpected error under contention: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one booking must win the seat")
	assert.Equal(t, callers-1, conflicts)
	requireCounterConsistent(t, te.store, trip.ID)
}

func TestCancellationRoundTrip(t *testing.T) {
	te := newTestEngine(t, 0)
	trip := te.mustTrip(t)
	ctx := context.Background()

	before, _, err := te.store.Availability(trip.ID)
	require.NoError(t, err)

	booking, err := te.ledger.CreateBooking(ctx, 1, trip.ID, []string{"1A"}, 1500)
	require.NoError(t, err)

	cancelled, err := te.ledger.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)

	// Seat and counter are fully restored.
	assert.True(t, seatStatusOf(t, te.store, trip.ID, "1A"))
	after, _, err := te.store.Availability(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, before.AvailableCount, after.AvailableCount)
	requireCounterConsistent(t, te.store, trip.ID)

	// The CONFIRMED -> CANCELLED transition happens exactly once.
	_, err = te.ledger.CancelBooking(ctx, booking.ID)
	require.ErrorIs(t, err, engine.ErrInvalidState)

	// Archive saw both the save and the cancellation.
	te.archive.mu.Lock()
	defer te.archive.mu.Unlock()
	assert.Equal(t, []string{booking.ID}, te.archive.cancelled)
}

func TestCancelUnknownBooking(t *testing.T) {
	te := newTestEngine(t, 0)
	_, err := te.ledger.CancelBooking(context.Background(), "no-such-booking")
	require.ErrorIs(t, err, engine.ErrBookingNotFound)
}

func TestCancellationEmitsAvailableEvents(t *testing.T) {
	te := newTestEngine(t, 0)
	trip := te.mustTrip(t)
	ctx := context.Background()

	booking, err := te.ledger.CreateBooking(ctx, 1, trip.ID, []string{"2A", "2B"}, 2000)
	require.NoError(t, err)
	_, err = te.ledger.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)

	events := te.events.all()
	require.Len(t, events, 4)
	// Cancellation events trail the booking events, in seat order.
	assert.Equal(t, model.SeatAvailable, events[2].Status)
	assert.Equal(t, "2A", events[2].SeatID)
	assert.Equal(t, model.SeatAvailable, events[3].Status)
	assert.Equal(t, "2B", events[3].SeatID)
}

func TestArchiveFailureDoesNotFailBooking(t *testing.T) {
	te := newTestEngine(t, 0)
	trip := te.mustTrip(t)
	te.archive.mu.Lock()
	te.archive.fail = true
	te.archive.mu.Unlock()

	booking, err := te.ledger.CreateBooking(context.Background(), 1, trip.ID, []string{"1A"}, 1500)
	require.NoError(t, err, "archive trouble must never fail the inventory transaction")
	assert.False(t, seatStatusOf(t, te.store, trip.ID, "1A"))

	_, err = te.ledger.CancelBooking(context.Background(), booking.ID)
	require.NoError(t, err)
}

func TestGetBookingAndListByUser(t *testing.T) {
	te := newTestEngine(t, 0)
	trip := te.mustTrip(t)
	ctx := context.Background()

	first, err := te.ledger.CreateBooking(ctx, 7, trip.ID, []string{"1A"}, 1000)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond) // distinct CreatedAt for ordering
	second, err := te.ledger.CreateBooking(ctx, 7, trip.ID, []string{"1B"}, 1000)
	require.NoError(t, err)
	_, err = te.ledger.CreateBooking(ctx, 8, trip.ID, []string{"2A"}, 1000)
	require.NoError(t, err)

	got, err := te.ledger.GetBooking(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = te.ledger.GetBooking("missing")
	require.ErrorIs(t, err, engine.ErrBookingNotFound)

	mine := te.ledger.ListByUser(7)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Equal(t, first.ID, mine[1].ID)
	assert.Len(t, te.ledger.ListByUser(99), 0)
}

func TestExclusivityUnderMixedOperations(t *testing.T) {
	te := newTestEngine(t, 30*time.Millisecond)
	trip := te.mustTrip(t)

	// Hammer one seat with mixed holds and bookings from many
	// goroutines; the seat must end up booked exactly once and the
	// counter must stay consistent throughout.
	const callers = 24
	var wg sync.WaitGroup
	var booked sync.Map
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				if hold, err := te.holds.PlaceHold(trip.ID, "1A"); err == nil {
					te.holds.ReleaseHold(hold.ID)
				}
				return
			}
			if b, err := te.ledger.CreateBooking(context.Background(), uint64(i), trip.ID, []string{"1A"}, 1000); err == nil {
				booked.Store(b.ID, struct{}{})
			}
		}(i)
	}
	wg.Wait()

	winners := 0
	booked.Range(func(_, _ any) bool { winners++; return true })
	assert.LessOrEqual(t, winners, 1, "a seat can be sold at most once")
	requireCounterConsistent(t, te.store, trip.ID)
}
