package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/trip-seat-booking/internal/model"
)

// DefaultHoldTTL is how long a seat stays HELD when no TTL is
// configured.  There is no renewal: once a hold expires the seat is
// unconditionally available again.
const DefaultHoldTTL = 5 * time.Minute

// activeHold is the manager's record of one pending expiry timer.
type activeHold struct {
	tripID string
	seatID string
	timer  *time.Timer
}

// HoldManager places short-lived seat holds and owns their expiry
// timers.  Timers are per-hold and independent; a timer firing races
// any commit or release on the same seat for the trip lock, and
// whichever loses simply observes the now-current state and no-ops
// thanks to the store's idempotent release semantics.  A hold can
// therefore never double-fire or double-release.
type HoldManager struct {
	store    *Store
	notifier Notifier
	ttl      time.Duration

	mu     sync.Mutex
	active map[string]*activeHold // keyed by hold ID
}

// NewHoldManager constructs a HoldManager.  A non-positive ttl falls
// back to DefaultHoldTTL.
func NewHoldManager(store *Store, notifier Notifier, ttl time.Duration) *HoldManager {
	if store == nil {
		panic("nil store passed to NewHoldManager")
	}
	if ttl <= 0 {
		ttl = DefaultHoldTTL
	}
	return &HoldManager{
		store:    store,
		notifier: notifier,
		ttl:      ttl,
		active:   make(map[string]*activeHold),
	}
}

// PlaceHold transitions the seat to HELD and schedules the expiry
// timer.  It fails with ErrSeatUnavailable when the seat is not
// AVAILABLE.  The HELD event is emitted after the trip lock has been
// released.
func (m *HoldManager) PlaceHold(tripID, seatID string) (model.Hold, error) {
	holdID := uuid.NewString()
	expiresAt := time.Now().UTC().Add(m.ttl)
	if err := m.store.Hold(tripID, seatID, holdID, expiresAt); err != nil {
		return model.Hold{}, err
	}
	h := &activeHold{tripID: tripID, seatID: seatID}
	m.mu.Lock()
	m.active[holdID] = h
	h.timer = time.AfterFunc(m.ttl, func() { m.expire(holdID) })
	m.mu.Unlock()

	notifyAll(m.notifier, []SeatStatusChange{{
		TripID:     tripID,
		SeatID:     seatID,
		Status:     model.SeatHeld,
		OccurredAt: time.Now().UTC(),
	}})
	return model.Hold{ID: holdID, TripID: tripID, SeatID: seatID, ExpiresAt: expiresAt}, nil
}

// ReleaseHold cancels the pending timer, if any, and releases the
// seat.  It is idempotent: releasing an unknown, already released,
// already expired or already superseded hold does nothing and
// returns no error, and the available counter is never incremented
// twice for the same hold.
func (m *HoldManager) ReleaseHold(holdID string) {
	m.release(holdID, true)
}

// expire is the timer callback.  The timer has already fired, so
// only the map entry needs cleaning up.
func (m *HoldManager) expire(holdID string) {
	m.release(holdID, false)
}

// release performs the shared release path.  The AVAILABLE event is
// emitted only when the seat actually transitioned, i.e. the hold
// was still the one occupying it.
func (m *HoldManager) release(holdID string, stopTimer bool) {
	m.mu.Lock()
	h, ok := m.active[holdID]
	if ok {
		delete(m.active, holdID)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	if stopTimer && h.timer != nil {
		h.timer.Stop()
	}
	released, err := m.store.Release(h.tripID, h.seatID, holdID)
	if err != nil || !released {
		return
	}
	notifyAll(m.notifier, []SeatStatusChange{{
		TripID:     h.tripID,
		SeatID:     h.seatID,
		Status:     model.SeatAvailable,
		OccurredAt: time.Now().UTC(),
	}})
}

// Forget stops the timers of holds that were superseded by a booking
// commit.  The seats are already BOOKED, so no store transition and
// no event happen here; if a timer slipped through and fires anyway,
// the store-level release no-ops.
func (m *HoldManager) Forget(holdIDs []string) {
	if len(holdIDs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range holdIDs {
		if h, ok := m.active[id]; ok {
			if h.timer != nil {
				h.timer.Stop()
			}
			delete(m.active, id)
		}
	}
}

// TTL reports the configured hold time-to-live.
func (m *HoldManager) TTL() time.Duration { return m.ttl }
