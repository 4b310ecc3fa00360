package engine

import (
	"sync"
	"time"

	"github.com/iliyamo/trip-seat-booking/internal/model"
)

// tripInventory holds all mutable state for one trip: the trip
// header with its derived available counter, the per-seat state map
// and the layout order used for availability snapshots.  Every
// state-reading-then-writing sequence on a trip runs with mu held,
// so transitions on a given seat are strictly serialized.  The mutex
// is never held across a notification or any other external call.
type tripInventory struct {
	mu    sync.Mutex
	trip  model.Trip
	seats map[string]*model.SeatState
	order []model.SeatPosition
}

// Store owns the per-trip seat state maps and exposes only
// state-transition operations on them — there is no way to overwrite
// a seat state directly, which is what keeps the one-state-per-seat
// invariant enforceable.  Two different trips never block each
// other: the store-level lock guards only the trip map itself.
type Store struct {
	mu    sync.RWMutex
	trips map[string]*tripInventory
}

// NewStore returns an empty seat state store.  Trips are added by
// the Registry as they are materialized.
func NewStore() *Store {
	return &Store{trips: make(map[string]*tripInventory)}
}

// add registers a freshly materialized trip inventory.  All seats
// start AVAILABLE; the caller (the registry) guarantees the trip ID
// is unique.
func (s *Store) add(trip model.Trip, layout []model.SeatPosition) {
	inv := &tripInventory{
		trip:  trip,
		seats: make(map[string]*model.SeatState, len(layout)),
		order: layout,
	}
	for _, pos := range layout {
		inv.seats[pos.SeatID] = &model.SeatState{
			SeatID: pos.SeatID,
			Status: model.SeatAvailable,
		}
	}
	s.mu.Lock()
	s.trips[trip.ID] = inv
	s.mu.Unlock()
}

// inventory looks up the tripInventory for a trip ID.
func (s *Store) inventory(tripID string) (*tripInventory, error) {
	s.mu.RLock()
	inv, ok := s.trips[tripID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrTripNotFound
	}
	return inv, nil
}

// Trip returns a snapshot of the trip header, including the current
// available-seat counter.
func (s *Store) Trip(tripID string) (model.Trip, error) {
	inv, err := s.inventory(tripID)
	if err != nil {
		return model.Trip{}, err
	}
	inv.mu.Lock()
	t := inv.trip
	inv.mu.Unlock()
	return t, nil
}

// Availability returns the trip header and the seat map of a trip in
// layout order, merging position data with the live state.  Header
// and seat map are snapshotted inside one critical section, so the
// returned counter always equals the number of available seats in
// the returned map: no caller ever observes a state that was valid
// only momentarily.
func (s *Store) Availability(tripID string) (model.Trip, []model.SeatAvailability, error) {
	inv, err := s.inventory(tripID)
	if err != nil {
		return model.Trip{}, nil, err
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make([]model.SeatAvailability, 0, len(inv.order))
	for _, pos := range inv.order {
		st := inv.seats[pos.SeatID]
		out = append(out, model.SeatAvailability{
			SeatID:      pos.SeatID,
			Row:         pos.Row,
			Column:      pos.Column,
			Visible:     pos.Visible,
			IsAvailable: st.Status == model.SeatAvailable,
		})
	}
	return inv.trip, out, nil
}

// Hold transitions a single AVAILABLE seat to HELD under the given
// hold ID.  It returns ErrSeatUnavailable when the seat is unknown
// or not AVAILABLE.
func (s *Store) Hold(tripID, seatID, holdID string, expiresAt time.Time) error {
	inv, err := s.inventory(tripID)
	if err != nil {
		return err
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	st, ok := inv.seats[seatID]
	if !ok || st.Status != model.SeatAvailable {
		return ErrSeatUnavailable
	}
	st.Status = model.SeatHeld
	st.HoldID = holdID
	st.HoldExpiresAt = expiresAt
	return inv.decAvailable()
}

// Release transitions a seat back to AVAILABLE if, and only if, it
// is still HELD under the given hold ID.  It reports whether the
// transition happened.  Releasing a seat that has already expired,
// been released, or been superseded by a commit is a no-op, not an
// error — this idempotency is what absorbs the race between an
// expiry timer firing and a commit landing first.
func (s *Store) Release(tripID, seatID, holdID string) (bool, error) {
	inv, err := s.inventory(tripID)
	if err != nil {
		return false, err
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	st, ok := inv.seats[seatID]
	if !ok || st.Status != model.SeatHeld || st.HoldID != holdID {
		return false, nil
	}
	st.Status = model.SeatAvailable
	st.HoldID = ""
	st.HoldExpiresAt = time.Time{}
	return true, inv.incAvailable()
}

// Commit transitions every seat in seatIDs to BOOKED under the given
// booking ID as one atomic group: all seats are validated first and
// only then applied, inside a single critical section, so either
// every targeted seat transitions or none do.  A seat qualifies when
// it is AVAILABLE or HELD — holds are inventory-level, not
// session-scoped, so a commit may supersede any hold — but never
// when it is already BOOKED.  On success the hold IDs that were
// superseded are returned so the caller can cancel their timers.
func (s *Store) Commit(tripID, bookingID string, seatIDs []string) ([]string, error) {
	inv, err := s.inventory(tripID)
	if err != nil {
		return nil, err
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	// Validate the whole group before touching anything.
	for _, seatID := range seatIDs {
		st, ok := inv.seats[seatID]
		if !ok || st.Status == model.SeatBooked {
			return nil, ErrSeatUnavailable
		}
	}
	var superseded []string
	for _, seatID := range seatIDs {
		st := inv.seats[seatID]
		if st.Status == model.SeatHeld {
			superseded = append(superseded, st.HoldID)
		} else if err := inv.decAvailable(); err != nil {
			return nil, err
		}
		st.Status = model.SeatBooked
		st.HoldID = ""
		st.HoldExpiresAt = time.Time{}
		st.BookingID = bookingID
	}
	return superseded, nil
}

// Cancel transitions every seat of a cancelled booking back to
// AVAILABLE, again as one atomic group.  Every seat must currently
// be BOOKED under the matching booking ID; anything else means the
// ledger and the seat map have drifted apart and is reported as
// ErrInvariantViolation rather than silently patched over.
func (s *Store) Cancel(tripID, bookingID string, seatIDs []string) error {
	inv, err := s.inventory(tripID)
	if err != nil {
		return err
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, seatID := range seatIDs {
		st, ok := inv.seats[seatID]
		if !ok || st.Status != model.SeatBooked || st.BookingID != bookingID {
			return ErrInvariantViolation
		}
	}
	for _, seatID := range seatIDs {
		st := inv.seats[seatID]
		st.Status = model.SeatAvailable
		st.BookingID = ""
		if err := inv.incAvailable(); err != nil {
			return err
		}
	}
	return nil
}

// decAvailable decrements the derived counter in lock-step with a
// seat leaving AVAILABLE.  Underflow means the counter and the seat
// map disagree, which is a bug.
func (inv *tripInventory) decAvailable() error {
	if inv.trip.AvailableCount == 0 {
		return ErrInvariantViolation
	}
	inv.trip.AvailableCount--
	return nil
}

// incAvailable increments the derived counter in lock-step with a
// seat returning to AVAILABLE.
func (inv *tripInventory) incAvailable() error {
	if inv.trip.AvailableCount >= inv.trip.TotalSeats {
		return ErrInvariantViolation
	}
	inv.trip.AvailableCount++
	return nil
}
