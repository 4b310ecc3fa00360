package model

import "time"

// SeatStatus enumerates the three states a seat can be in for a
// given trip.  Every seat of a trip is in exactly one state at any
// instant; this exclusivity is the core invariant the inventory
// engine protects.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE" // free for holds and bookings
	SeatHeld      SeatStatus = "HELD"      // temporarily reserved by a hold
	SeatBooked    SeatStatus = "BOOKED"    // sold to a confirmed booking
)

// SeatState is the authoritative record for one (trip, seat) pair.
// HoldID/HoldExpiresAt are only meaningful while Status is HELD;
// BookingID only while Status is BOOKED.  Seat states are created
// when a trip's inventory is instantiated and are never deleted —
// cancellation reverts a seat to AVAILABLE, it does not remove the
// record.
type SeatState struct {
	SeatID        string     // seat identifier within the trip
	Status        SeatStatus // current state
	HoldID        string     // active hold, when HELD
	HoldExpiresAt time.Time  // expiry of the active hold, when HELD
	BookingID     string     // owning booking, when BOOKED
}

// SeatAvailability is the read model returned by availability
// queries.  It merges layout position data with the live state so
// clients can render a seat map in a single call.
type SeatAvailability struct {
	SeatID      string `json:"seat_id"`
	Row         uint32 `json:"row"`
	Column      uint32 `json:"col"`
	Visible     bool   `json:"visible"`
	IsAvailable bool   `json:"is_available"`
}
