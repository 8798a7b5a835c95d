// Package providerrepo persists logistics providers and their fleets with
// GORM. Vehicles live in their own table keyed by provider and registration
// number so availability can be flipped with a single conditional UPDATE.
package providerrepo

import (
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProviderDTO is the providers table row.
type ProviderDTO struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name     string       `gorm:"type:varchar(255);not null"`
	Phone    string       `gorm:"type:varchar(50)"`
	Verified bool         `gorm:"not null;default:false"`
	Vehicles []VehicleDTO `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
}

func (ProviderDTO) TableName() string {
	return "providers"
}

// VehicleDTO is the vehicles table row. Position is the insertion rank used
// to list a fleet in registration order.
type VehicleDTO struct {
	ProviderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number        string          `gorm:"type:varchar(50);primaryKey"`
	Position      int             `gorm:"not null"`
	Class         string          `gorm:"type:varchar(10);not null"`
	CapacityTons  float64         `gorm:"not null"`
	DriverName    string          `gorm:"type:varchar(255)"`
	DriverPhone   string          `gorm:"type:varchar(50)"`
	DriverLicense string          `gorm:"type:varchar(50)"`
	Available     bool            `gorm:"not null;index"`
	Location      pq.Float64Array `gorm:"type:double precision[]"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(p *logistics.Provider) ProviderDTO {
	providerID := p.ID().Google()
	vehicles := make([]VehicleDTO, 0, len(p.Vehicles()))
	for i, v := range p.Vehicles() {
		vehicles = append(vehicles, vehicleFromDomain(providerID, i, v))
	}

	return ProviderDTO{
		ID:       providerID,
		Name:     p.Name(),
		Phone:    p.Phone(),
		Verified: p.IsVerified(),
		Vehicles: vehicles,
	}
}

func vehicleFromDomain(providerID uuid.UUID, position int, v *logistics.Vehicle) VehicleDTO {
	dto := VehicleDTO{
		ProviderID:    providerID,
		Number:        v.Number(),
		Position:      position,
		Class:         v.Class().String(),
		CapacityTons:  v.CapacityTons(),
		DriverName:    v.Driver().Name,
		DriverPhone:   v.Driver().Phone,
		DriverLicense: v.Driver().License,
		Available:     v.IsAvailable(),
	}
	if loc := v.Location(); loc != nil {
		dto.Location = loc.LngLat()
	}
	return dto
}

func toDomain(dto ProviderDTO) (*logistics.Provider, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	vehicles := make([]*logistics.Vehicle, 0, len(dto.Vehicles))
	for _, vDto := range dto.Vehicles {
		v, vErr := vehicleToDomain(vDto)
		if vErr != nil {
			return nil, vErr
		}
		vehicles = append(vehicles, v)
	}

	return logistics.RestoreProvider(id, dto.Name, dto.Phone, dto.Verified, vehicles)
}

func vehicleToDomain(dto VehicleDTO) (*logistics.Vehicle, error) {
	class, err := logistics.ParseCapacityClass(dto.Class)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if len(dto.Location) > 0 {
		point, pointErr := kernel.GeoPointFromLngLat(dto.Location)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	driver := logistics.Driver{Name: dto.DriverName, Phone: dto.DriverPhone, License: dto.DriverLicense}
	return logistics.RestoreVehicle(dto.Number, class, dto.CapacityTons, driver, dto.Available, location)
}
