package ports

import (
	"context"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
)

// ProviderRepository defines the persistence contract for logistics providers
// and their fleets.
type ProviderRepository interface {
	// Add persists a new provider together with its vehicles.
	Add(ctx context.Context, aggregate *logistics.Provider) error

	// Update persists profile changes and registers vehicles added to the fleet.
	// Vehicle availability is not written here; see UpdateVehicleAvailability.
	Update(ctx context.Context, aggregate *logistics.Provider) error

	// Get retrieves a provider with its fleet or fails with errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*logistics.Provider, error)

	// GetAll retrieves every provider with its fleet.
	GetAll(ctx context.Context) ([]*logistics.Provider, error)

	// UpdateVehicleAvailability flips the availability of one vehicle only if
	// it still equals from. A lost race yields logistics.ErrVehicleUnavailable
	// when reserving and logistics.ErrVehicleAlreadyAvailable when releasing.
	UpdateVehicleAvailability(ctx context.Context, providerID kernel.UUID, vehicleNumber string, from, to bool) error

	// ReleaseIdleVehicle makes a reserved vehicle available only if no order
	// in processing or in_transit names it, decided atomically with the write.
	// It reports whether the vehicle was released.
	ReleaseIdleVehicle(ctx context.Context, providerID kernel.UUID, vehicleNumber string) (bool, error)

	// UpdateVehicleLocation stores the reported position of one vehicle.
	UpdateVehicleLocation(ctx context.Context, providerID kernel.UUID, vehicleNumber string, point kernel.GeoPoint) error
}
