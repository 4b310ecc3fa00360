package engine

import (
	"time"

	"github.com/iliyamo/trip-seat-booking/internal/model"
)

// SeatStatusChange describes one applied seat transition.  Within an
// atomic multi-seat group, changes are delivered in the order the
// transitions were applied.
type SeatStatusChange struct {
	TripID     string
	SeatID     string
	Status     model.SeatStatus
	OccurredAt time.Time
}

// Notifier receives state-change events for broadcast to clients.
// Delivery is fire-and-forget: implementations must not block, and a
// notifier failure never rolls back or fails the inventory mutation
// that produced the event.  The engine never calls a Notifier while
// holding an inventory lock.
type Notifier interface {
	SeatStatusChanged(change SeatStatusChange)
}

// NopNotifier discards all events.  It stands in when no broadcast
// sink is configured.
type NopNotifier struct{}

// SeatStatusChanged implements Notifier by doing nothing.
func (NopNotifier) SeatStatusChanged(SeatStatusChange) {}

// notifyAll forwards each change to the notifier in order.  A nil
// notifier is treated as NopNotifier.
func notifyAll(n Notifier, changes []SeatStatusChange) {
	if n == nil {
		return
	}
	for _, ch := range changes {
		n.SeatStatusChanged(ch)
	}
}
