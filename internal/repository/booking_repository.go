package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/trip-seat-booking/internal/model"
)

// BookingRecord is the persistence model for an archived booking.
// The in-memory ledger is the source of truth while the process
// runs; the archive exists for audit and reporting, so rows carry
// their seat assignments in a child table.
type BookingRecord struct {
	ID               string   // bookings.id (UUID)
	UserID           uint64   // bookings.user_id
	TripID           string   // bookings.trip_id
	Status           string   // bookings.status (CONFIRMED | CANCELLED)
	TotalAmountCents uint32   // bookings.total_amount_cents
	SeatIDs          []string // booking_seats.seat_id rows
}

// BookingRepo archives booking records in MySQL.  It implements
// engine.Archive.  All writes happen after the in-memory transaction
// has committed; failures here are the caller's to log, never to
// roll back on.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// SaveBooking archives a freshly confirmed booking.
func (r *BookingRepo) SaveBooking(ctx context.Context, b model.Booking) error {
	return r.insert(ctx, BookingRecord{
		ID:               b.ID,
		UserID:           b.UserID,
		TripID:           b.TripID,
		Status:           string(b.Status),
		TotalAmountCents: b.TotalAmountCents,
		SeatIDs:          b.SeatIDs,
	})
}

// insert writes the booking row and its seat assignments inside one
// database transaction so the archive never shows a booking without
// its seats.
func (r *BookingRepo) insert(ctx context.Context, rec BookingRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const qBooking = `INSERT INTO bookings (id, user_id, trip_id, status, total_amount_cents)
	                  VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, qBooking, rec.ID, rec.UserID, rec.TripID, rec.Status, rec.TotalAmountCents); err != nil {
		return err
	}

	if len(rec.SeatIDs) > 0 {
		query := `INSERT INTO booking_seats (booking_id, seat_id) VALUES `
		args := make([]interface{}, 0, len(rec.SeatIDs)*2)
		for i, seatID := range rec.SeatIDs {
			if i > 0 {
				query += ","
			}
			query += "(?, ?)"
			args = append(args, rec.ID, seatID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// MarkCancelled flips an archived booking's status to CANCELLED.
// The update is idempotent at the SQL level; a missing row is not an
// error because the archive is best-effort.
func (r *BookingRepo) MarkCancelled(ctx context.Context, bookingID string) error {
	const q = `UPDATE bookings SET status = 'CANCELLED' WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, bookingID)
	return err
}
