package model

import "time"

// Vehicle describes a bus or shuttle in the fleet catalog.  The
// seat layout of a vehicle is immutable once trips have been
// instantiated against it; the engine treats both the vehicle and
// its layout as read-only input.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – human readable label (e.g. "Volvo 9700 #12").
//  TotalSeats – number of bookable seats in the layout.
//  IsActive   – whether the vehicle may be scheduled for new trips.
//  CreatedAt  – timestamp when the record was created.
//  UpdatedAt  – timestamp when the record was last updated.
type Vehicle struct {
	ID         uint64    // vehicles.id
	Name       string    // vehicles.name
	TotalSeats uint32    // vehicles.total_seats
	IsActive   bool      // vehicles.is_active
	CreatedAt  time.Time // vehicles.created_at
	UpdatedAt  time.Time // vehicles.updated_at
}

// SeatPosition identifies one seat within a vehicle's layout.  The
// ordered set of positions for a vehicle is the seat identity the
// inventory engine is instantiated from.
//
// Fields:
//  SeatID  – stable seat identifier within the vehicle (e.g. "2A").
//  Row     – one-based row index of the seat.
//  Column  – one-based column index of the seat.
//  Visible – whether the seat is shown to customers; invisible seats
//            (crew, blocked) are still tracked but never offered.
type SeatPosition struct {
	SeatID  string // seat_layout.seat_id
	Row     uint32 // seat_layout.row_num
	Column  uint32 // seat_layout.col_num
	Visible bool   // seat_layout.visible
}
