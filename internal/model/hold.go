package model

import "time"

// Hold represents a temporary, non-committing reservation of a
// single seat.  Holds block other holds and bookings on that seat
// until released, expired, or superseded by a booking commit.  They
// are ephemeral: holds live only in process memory and are never
// persisted.
//
// Fields:
//  ID        – UUID returned to the client for release calls.
//  TripID    – trip the held seat belongs to.
//  SeatID    – seat being held.
//  ExpiresAt – when the hold expires and the seat returns to
//              AVAILABLE automatically.
type Hold struct {
	ID        string
	TripID    string
	SeatID    string
	ExpiresAt time.Time
}
