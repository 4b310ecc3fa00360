package repository // repository holds data access logic for catalog entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows errors.Is comparisons

	"github.com/iliyamo/trip-seat-booking/internal/engine" // engine defines the catalog contract and sentinel errors
	"github.com/iliyamo/trip-seat-booking/internal/model"  // model defines vehicle and seat layout types
)

// VehicleRepo provides read access to the fleet catalog: vehicle
// records and their seat layouts.  The catalog is owned by an
// external admin surface; the booking engine only ever reads it, and
// a trip's layout is read exactly once, when the trip is
// materialized.  VehicleRepo implements engine.Catalog.
type VehicleRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewVehicleRepo constructs a VehicleRepo with the given DB handle.
func NewVehicleRepo(db *sql.DB) *VehicleRepo {
	return &VehicleRepo{db: db}
}

// Vehicle returns the vehicle record together with its ordered seat
// layout.  It returns engine.ErrVehicleNotFound when no such vehicle
// exists or it is inactive.  Layout rows are ordered by row then
// column so availability snapshots render in seat-map order.
func (r *VehicleRepo) Vehicle(ctx context.Context, vehicleID uint64) (model.Vehicle, []model.SeatPosition, error) {
	const qVehicle = `SELECT id, name, total_seats, is_active, created_at, updated_at
	                  FROM vehicles WHERE id = ? AND is_active = 1`
	var v model.Vehicle
	err := r.db.QueryRowContext(ctx, qVehicle, vehicleID).
		Scan(&v.ID, &v.Name, &v.TotalSeats, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, nil, engine.ErrVehicleNotFound
		}
		return model.Vehicle{}, nil, err
	}

	const qLayout = `SELECT seat_id, row_num, col_num, visible
	                 FROM seat_layout
	                 WHERE vehicle_id = ?
	                 ORDER BY row_num, col_num`
	rows, err := r.db.QueryContext(ctx, qLayout, vehicleID)
	if err != nil {
		return model.Vehicle{}, nil, err
	}
	defer rows.Close()

	var layout []model.SeatPosition
	for rows.Next() {
		var p model.SeatPosition
		if err := rows.Scan(&p.SeatID, &p.Row, &p.Column, &p.Visible); err != nil {
			return model.Vehicle{}, nil, err
		}
		layout = append(layout, p)
	}
	if err := rows.Err(); err != nil {
		return model.Vehicle{}, nil, err
	}
	return v, layout, nil
}
