package model

// Trip is the bookable instance of a vehicle's inventory on one
// specific travel date.  Trips are materialized lazily on first
// access and are unique per (VehicleID, Date) pair; the registry
// guarantees at most one Trip ever exists for a given key.
//
// Fields:
//  ID             – UUID assigned when the trip is materialized.
//  VehicleID      – vehicle whose layout this trip's inventory copies.
//  Date           – travel date in YYYY-MM-DD form.
//  TotalSeats     – number of seats in the inventory (fixed).
//  AvailableCount – derived counter equal to the number of seats
//                   currently AVAILABLE; maintained in lock-step
//                   with every seat transition.
type Trip struct {
	ID             string
	VehicleID      uint64
	Date           string
	TotalSeats     uint32
	AvailableCount uint32
}
