package queue_publisher

import (
	"context"
	"time"

	"github.com/iliyamo/trip-seat-booking/internal/engine"
	q "github.com/iliyamo/trip-seat-booking/internal/queue"
)

// BrokerNotifier adapts the RabbitMQ publisher to the engine's
// Notifier contract.  Every event is published from its own
// goroutine so the engine never blocks on broker I/O; publish errors
// are logged inside PublishSeatStatusChanged and dropped, because a
// broadcast failure must never affect the inventory mutation that
// produced the event.
type BrokerNotifier struct {
	// Timeout bounds a single publish attempt.  Zero means 5s.
	Timeout time.Duration
}

// SeatStatusChanged implements engine.Notifier.
func (n *BrokerNotifier) SeatStatusChanged(change engine.SeatStatusChange) {
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ev := q.SeatStatusChangedEvent{
		TripID:     change.TripID,
		SeatID:     change.SeatID,
		Status:     string(change.Status),
		OccurredAt: change.OccurredAt.Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = PublishSeatStatusChanged(ctx, ev)
	}()
}
