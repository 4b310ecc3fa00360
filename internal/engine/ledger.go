package engine

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/trip-seat-booking/internal/model"
)

// Archive persists booking records outside the process, write-through
// style.  The in-memory ledger stays authoritative: an archive
// failure is logged and never rolls back or fails the inventory
// transaction it trails.  A nil Archive disables persistence.
type Archive interface {
	SaveBooking(ctx context.Context, b model.Booking) error
	MarkCancelled(ctx context.Context, bookingID string) error
}

// Ledger executes booking creation and cancellation as atomic
// multi-seat transactions against the seat state store and owns the
// booking records.  Authorization (owner-or-admin on cancellation)
// is the calling layer's concern; the ledger only enforces inventory
// and lifecycle invariants.
type Ledger struct {
	store    *Store
	holds    *HoldManager
	notifier Notifier
	archive  Archive

	mu       sync.RWMutex
	bookings map[string]*model.Booking
}

// NewLedger constructs a Ledger.  The store and hold manager must be
// non-nil; notifier and archive may be nil.
func NewLedger(store *Store, holds *HoldManager, notifier Notifier, archive Archive) *Ledger {
	if store == nil || holds == nil {
		panic("nil dependency passed to NewLedger")
	}
	return &Ledger{
		store:    store,
		holds:    holds,
		notifier: notifier,
		archive:  archive,
		bookings: make(map[string]*model.Booking),
	}
}

// CreateBooking books the given seats for userID on a trip as one
// all-or-nothing group.  The seat list must be non-empty and free of
// duplicates (ErrInvalidRequest otherwise).  If any seat cannot be
// committed the whole operation fails with ErrSeatUnavailable and no
// seat, counter or booking change is left behind.  On success the
// booking is recorded CONFIRMED, archived, and one BOOKED event per
// seat is emitted in commit order.
func (l *Ledger) CreateBooking(ctx context.Context, userID uint64, tripID string, seatIDs []string, amountCents uint32) (model.Booking, error) {
	if len(seatIDs) == 0 {
		return model.Booking{}, ErrInvalidRequest
	}
	seen := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if id == "" {
			return model.Booking{}, ErrInvalidRequest
		}
		if _, dup := seen[id]; dup {
			return model.Booking{}, ErrInvalidRequest
		}
		seen[id] = struct{}{}
	}

	bookingID := uuid.NewString()
	superseded, err := l.store.Commit(tripID, bookingID, seatIDs)
	if err != nil {
		return model.Booking{}, err
	}
	// Holds replaced by this booking must not fire their timers.
	l.holds.Forget(superseded)

	now := time.Now().UTC()
	b := &model.Booking{
		ID:               bookingID,
		UserID:           userID,
		TripID:           tripID,
		SeatIDs:          append([]string(nil), seatIDs...),
		Status:           model.BookingConfirmed,
		TotalAmountCents: amountCents,
		CreatedAt:        now,
	}
	l.mu.Lock()
	l.bookings[bookingID] = b
	l.mu.Unlock()

	if l.archive != nil {
		if err := l.archive.SaveBooking(ctx, *b); err != nil {
			log.Printf("ledger: archive booking %s failed: %v", bookingID, err)
		}
	}

	changes := make([]SeatStatusChange, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		changes = append(changes, SeatStatusChange{
			TripID:     tripID,
			SeatID:     seatID,
			Status:     model.SeatBooked,
			OccurredAt: now,
		})
	}
	notifyAll(l.notifier, changes)
	return *b, nil
}

// CancelBooking reverses a confirmed booking: every assigned seat is
// transitioned back to AVAILABLE atomically, the booking becomes
// CANCELLED, and one AVAILABLE event per seat is emitted.  It fails
// with ErrBookingNotFound for an unknown ID and ErrInvalidState when
// the booking is already cancelled; the CONFIRMED to CANCELLED
// transition happens exactly once.
func (l *Ledger) CancelBooking(ctx context.Context, bookingID string) (model.Booking, error) {
	l.mu.Lock()
	b, ok := l.bookings[bookingID]
	if !ok {
		l.mu.Unlock()
		return model.Booking{}, ErrBookingNotFound
	}
	if b.Status == model.BookingCancelled {
		l.mu.Unlock()
		return model.Booking{}, ErrInvalidState
	}
	if err := l.store.Cancel(b.TripID, bookingID, b.SeatIDs); err != nil {
		l.mu.Unlock()
		log.Printf("ledger: cancel booking %s seat rollback failed: %v", bookingID, err)
		return model.Booking{}, err
	}
	b.Status = model.BookingCancelled
	out := *b
	l.mu.Unlock()

	if l.archive != nil {
		if err := l.archive.MarkCancelled(ctx, bookingID); err != nil {
			log.Printf("ledger: archive cancellation of %s failed: %v", bookingID, err)
		}
	}

	now := time.Now().UTC()
	changes := make([]SeatStatusChange, 0, len(out.SeatIDs))
	for _, seatID := range out.SeatIDs {
		changes = append(changes, SeatStatusChange{
			TripID:     out.TripID,
			SeatID:     seatID,
			Status:     model.SeatAvailable,
			OccurredAt: now,
		})
	}
	notifyAll(l.notifier, changes)
	return out, nil
}

// GetBooking returns a copy of one booking record.
func (l *Ledger) GetBooking(bookingID string) (model.Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.bookings[bookingID]
	if !ok {
		return model.Booking{}, ErrBookingNotFound
	}
	return *b, nil
}

// ListByUser returns all bookings made by a user, newest first.
func (l *Ledger) ListByUser(userID uint64) []model.Booking {
	l.mu.RLock()
	out := make([]model.Booking, 0)
	for _, b := range l.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
