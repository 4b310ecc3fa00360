package engine

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/trip-seat-booking/internal/model"
)

// tripKey identifies a trip before it has an ID: one vehicle on one
// travel date.
type tripKey struct {
	vehicleID uint64
	date      string
}

// tripEntry tracks the materialization of one trip key.  The
// sync.Once guarantees the catalog is read and the inventory created
// at most once per key, no matter how many callers race on the first
// access; every racer observes the same outcome.
type tripEntry struct {
	once   sync.Once
	tripID string
	err    error
}

// Registry lazily materializes trips and their seat inventories on
// first access.  It is the only component that creates trips, and it
// guarantees at most one Trip ever exists per (vehicle, date) pair.
type Registry struct {
	catalog Catalog
	store   *Store
	mu      sync.Mutex
	entries map[tripKey]*tripEntry
}

// NewRegistry constructs a Registry backed by the given catalog and
// seat state store.  Both must be non-nil.
func NewRegistry(catalog Catalog, store *Store) *Registry {
	if catalog == nil || store == nil {
		panic("nil dependency passed to NewRegistry")
	}
	return &Registry{
		catalog: catalog,
		store:   store,
		entries: make(map[tripKey]*tripEntry),
	}
}

// GetOrCreate returns the trip for (vehicleID, date), materializing
// it on first access.  Concurrent first-access callers all receive
// the same trip ID and observe exactly one catalog read.  When the
// vehicle does not exist the call fails with ErrVehicleNotFound and
// no half-initialized trip is left visible; the failed key is
// forgotten so a later call may retry (for example after the vehicle
// is added to the catalog).
func (r *Registry) GetOrCreate(ctx context.Context, vehicleID uint64, date string) (model.Trip, error) {
	if date == "" {
		return model.Trip{}, ErrInvalidRequest
	}
	key := tripKey{vehicleID: vehicleID, date: date}
	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &tripEntry{}
		r.entries[key] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		e.tripID, e.err = r.materialize(ctx, vehicleID, date)
	})
	if e.err != nil {
		// Drop the failed entry so the key can be retried later.
		r.mu.Lock()
		if r.entries[key] == e {
			delete(r.entries, key)
		}
		r.mu.Unlock()
		return model.Trip{}, e.err
	}
	return r.store.Trip(e.tripID)
}

// materialize performs the one-time external catalog read and
// instantiates the inventory with every seat AVAILABLE.  The store
// is only touched after the catalog read succeeded, so a NotFound
// vehicle never leaves partial state behind.
func (r *Registry) materialize(ctx context.Context, vehicleID uint64, date string) (string, error) {
	vehicle, layout, err := r.catalog.Vehicle(ctx, vehicleID)
	if err != nil {
		return "", err
	}
	total := uint32(len(layout))
	if vehicle.TotalSeats != 0 && vehicle.TotalSeats != total {
		// Layout wins; the catalog's seat count is advisory.
		log.Printf("registry: vehicle %d reports %d seats but layout has %d", vehicleID, vehicle.TotalSeats, total)
	}
	trip := model.Trip{
		ID:             uuid.NewString(),
		VehicleID:      vehicleID,
		Date:           date,
		TotalSeats:     total,
		AvailableCount: total,
	}
	r.store.add(trip, layout)
	return trip.ID, nil
}
