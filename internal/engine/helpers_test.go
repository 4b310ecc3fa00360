package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trip-seat-booking/internal/engine"
	"github.com/iliyamo/trip-seat-booking/internal/model"
)

// fakeCatalog is an in-memory stand-in for the fleet catalog.  It
// counts reads so tests can assert the registry performs exactly one
// external read per trip key.
type fakeCatalog struct {
	mu       sync.Mutex
	vehicles map[uint64][]model.SeatPosition
	calls    int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{vehicles: make(map[uint64][]model.SeatPosition)}
}

func (f *fakeCatalog) addVehicle(id uint64, layout []model.SeatPosition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vehicles[id] = layout
}

func (f *fakeCatalog) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCatalog) Vehicle(_ context.Context, vehicleID uint64) (model.Vehicle, []model.SeatPosition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	layout, ok := f.vehicles[vehicleID]
	if !ok {
		return model.Vehicle{}, nil, engine.ErrVehicleNotFound
	}
	return model.Vehicle{ID: vehicleID, TotalSeats: uint32(len(layout)), IsActive: true}, layout, nil
}

// captureNotifier records every emitted change so tests can assert
// event counts and ordering.
type captureNotifier struct {
	mu      sync.Mutex
	changes []engine.SeatStatusChange
}

func (n *captureNotifier) SeatStatusChanged(ch engine.SeatStatusChange) {
	n.mu.Lock()
	n.changes = append(n.changes, ch)
	n.mu.Unlock()
}

func (n *captureNotifier) all() []engine.SeatStatusChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]engine.SeatStatusChange(nil), n.changes...)
}

func (n *captureNotifier) countByStatus(status model.SeatStatus) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, ch := range n.changes {
		if ch.Status == status {
			c++
		}
	}
	return c
}

// fakeArchive records archive calls and can be made to fail, to show
// that archiving never affects the in-memory transaction.
type fakeArchive struct {
	mu        sync.Mutex
	saved     []model.Booking
	cancelled []string
	fail      bool
}

func (a *fakeArchive) SaveBooking(_ context.Context, b model.Booking) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail {
		return errors.New("archive down")
	}
	a.saved = append(a.saved, b)
	return nil
}

func (a *fakeArchive) MarkCancelled(_ context.Context, bookingID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail {
		return errors.New("archive down")
	}
	a.cancelled = append(a.cancelled, bookingID)
	return nil
}

// layout2x2 is the standard four-seat test layout.
func layout2x2() []model.SeatPosition {
	return []model.SeatPosition{
		{SeatID: "1A", Row: 1, Column: 1, Visible: true},
		{SeatID: "1B", Row: 1, Column: 2, Visible: true},
		{SeatID: "2A", Row: 2, Column: 1, Visible: true},
		{SeatID: "2B", Row: 2, Column: 2, Visible: true},
	}
}

// testEngine bundles a fully wired engine over fake collaborators.
type testEngine struct {
	catalog  *fakeCatalog
	store    *engine.Store
	registry *engine.Registry
	holds    *engine.HoldManager
	ledger   *engine.Ledger
	events   *captureNotifier
	archive  *fakeArchive
}

// newTestEngine wires the engine with vehicle 3 carrying the 2x2
// layout.  ttl controls hold expiry; tests that exercise expiry pass
// a short duration.
func newTestEngine(t *testing.T, ttl time.Duration) *testEngine {
	t.Helper()
	catalog := newFakeCatalog()
	catalog.addVehicle(3, layout2x2())
	store := engine.NewStore()
	events := &captureNotifier{}
	archive := &fakeArchive{}
	holds := engine.NewHoldManager(store, events, ttl)
	return &testEngine{
		catalog:  catalog,
		store:    store,
		registry: engine.NewRegistry(catalog, store),
		holds:    holds,
		ledger:   engine.NewLedger(store, holds, events, archive),
		events:   events,
		archive:  archive,
	}
}

// mustTrip materializes the standard test trip.
func (te *testEngine) mustTrip(t *testing.T) model.Trip {
	t.Helper()
	trip, err := te.registry.GetOrCreate(context.Background(), 3, "2025-06-01")
	require.NoError(t, err)
	return trip
}

// requireCounterConsistent asserts the standing invariant: the
// trip's available counter equals the number of seats currently
// AVAILABLE in the seat map.
func requireCounterConsistent(t *testing.T, store *engine.Store, tripID string) {
	t.Helper()
	trip, seats, err := store.Availability(tripID)
	require.NoError(t, err)
	n := uint32(0)
	for _, s := range seats {
		if s.IsAvailable {
			n++
		}
	}
	require.Equal(t, n, trip.AvailableCount, "available counter drifted from seat states")
}

// seatStatusOf returns whether one seat is currently available.
func seatStatusOf(t *testing.T, store *engine.Store, tripID, seatID string) bool {
	t.Helper()
	_, seats, err := store.Availability(tripID)
	require.NoError(t, err)
	for _, s := range seats {
		if s.SeatID == seatID {
			return s.IsAvailable
		}
	}
	t.Fatalf("seat %s not found in trip %s", seatID, tripID)
	return false
}
