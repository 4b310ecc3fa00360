package engine

import (
	"context"

	"github.com/iliyamo/trip-seat-booking/internal/model"
)

// Catalog supplies the external, read-only fleet data the registry
// needs to materialize a trip: the vehicle record and its ordered
// seat layout.  Implementations must return ErrVehicleNotFound when
// the vehicle does not exist.  The layout is treated as immutable
// once a trip's inventory has been instantiated from it.
type Catalog interface {
	Vehicle(ctx context.Context, vehicleID uint64) (model.Vehicle, []model.SeatPosition, error)
}
