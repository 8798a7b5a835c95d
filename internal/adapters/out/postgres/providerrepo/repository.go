package providerrepo

import (
	"context"
	"errors"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProviderRepository implements ports.ProviderRepository using GORM.
type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// Add saves a new provider and its vehicles.
func (r *GormProviderRepository) Add(ctx context.Context, aggregate *logistics.Provider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the profile and inserts vehicles not stored yet. Stored
// vehicles keep their availability and location, which only change through
// UpdateVehicleAvailability and UpdateVehicleLocation.
func (r *GormProviderRepository) Update(ctx context.Context, aggregate *logistics.Provider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProviderDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "phone", "verified").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("provider", aggregate.ID().String())
	}

	if len(dto.Vehicles) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.Vehicles).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a provider with its fleet.
func (r *GormProviderRepository) Get(ctx context.Context, id kernel.UUID) (*logistics.Provider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProviderDTO
	if err := r.preload(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("provider", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every provider with its fleet.
func (r *GormProviderRepository) GetAll(ctx context.Context) ([]*logistics.Provider, error) {
	var dtos []ProviderDTO
	if err := r.preload(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	providers := make([]*logistics.Provider, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	return providers, nil
}

// UpdateVehicleAvailability flips availability with a compare-and-set on the
// current value. Two transactions reserving the same vehicle serialize on the
// row lock; the second sees the new value and matches no row.
func (r *GormProviderRepository) UpdateVehicleAvailability(
	ctx context.Context,
	providerID kernel.UUID,
	vehicleNumber string,
	from, to bool,
) error {
	result := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("provider_id = ? AND number = ? AND available = ?", providerID.Google(), vehicleNumber, from).
		Update("available", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	if err := r.vehicleExists(ctx, providerID, vehicleNumber); err != nil {
		return err
	}
	if to {
		return logistics.ErrVehicleAlreadyAvailable
	}
	return logistics.ErrVehicleUnavailable
}

// ReleaseIdleVehicle frees a reserved vehicle in one statement whose
// NOT EXISTS guard reads the orders committed when the statement starts.
// An assignment commits its order and its reservation together, so a
// reservation visible here always comes with its holding order.
func (r *GormProviderRepository) ReleaseIdleVehicle(
	ctx context.Context,
	providerID kernel.UUID,
	vehicleNumber string,
) (bool, error) {
	holding := []string{order.Processing.String(), order.InTransit.String()}

	result := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("provider_id = ? AND number = ? AND available = ?", providerID.Google(), vehicleNumber, false).
		Where(`NOT EXISTS (
			SELECT 1 FROM orders
			WHERE orders.logistics_provider_id = vehicles.provider_id
			  AND orders.logistics_vehicle_number = vehicles.number
			  AND orders.status IN ?)`, holding).
		Update("available", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormProviderRepository) UpdateVehicleLocation(
	ctx context.Context,
	providerID kernel.UUID,
	vehicleNumber string,
	point kernel.GeoPoint,
) error {
	result := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("provider_id = ? AND number = ?", providerID.Google(), vehicleNumber).
		Update("location", point.LngLat())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", vehicleNumber)
	}
	return nil
}

func (r *GormProviderRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Vehicles", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *GormProviderRepository) vehicleExists(ctx context.Context, providerID kernel.UUID, number string) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("provider_id = ? AND number = ?", providerID.Google(), number).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("vehicle", number)
	}
	return nil
}
