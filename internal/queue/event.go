// Package queue defines message payloads exchanged over the message broker.
package queue

// SeatStatusChangedEvent is published once per affected seat each
// time a seat transition is applied (held, booked, released back to
// available).  Within an atomic multi-seat booking or cancellation
// the events are published in the order the transitions were
// applied.  Consumers use it to fan seat-map updates out to clients
// without querying the engine.
type SeatStatusChangedEvent struct {
	TripID     string `json:"trip_id"`
	SeatID     string `json:"seat_id"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}
