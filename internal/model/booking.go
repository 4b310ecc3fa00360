package model

import "time"

// BookingStatus enumerates the lifecycle of a booking.  A booking is
// created CONFIRMED (holds are not bookings) and transitions to
// CANCELLED exactly once, irreversibly.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking records a user's purchase of one or more seats on a trip.
// The seat assignments are created atomically with the booking: while
// the booking is CONFIRMED every listed seat is BOOKED under this
// booking's ID.
//
// Fields:
//  ID               – UUID of the booking.
//  UserID           – user who made the booking (supplied by the
//                     request layer; the ledger never infers it).
//  TripID           – trip the seats belong to.
//  SeatIDs          – non-empty, duplicate-free seat assignment list.
//  Status           – CONFIRMED or CANCELLED.
//  TotalAmountCents – total price in cents for all seats.
//  CreatedAt        – creation timestamp (UTC).
type Booking struct {
	ID               string
	UserID           uint64
	TripID           string
	SeatIDs          []string
	Status           BookingStatus
	TotalAmountCents uint32
	CreatedAt        time.Time
}
