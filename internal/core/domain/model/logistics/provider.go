package logistics

import (
	"errors"
	"strings"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
	"ricetrade/internal/pkg/guard"
)

var (
	// ErrProviderIsNotConstructed is returned when using an improperly initialized Provider.
	ErrProviderIsNotConstructed = errors.New("Provider must be created via NewProvider or RestoreProvider constructor")
	// ErrVehicleNumberIsRequired is returned for a blank registration number.
	ErrVehicleNumberIsRequired = errs.NewValueIsRequiredError("vehicleNumber")
	// ErrVehicleUnavailable is returned when reserving a vehicle that is already reserved.
	ErrVehicleUnavailable = errs.NewConflictError("vehicle", "vehicle is not available")
	// ErrVehicleAlreadyAvailable is returned when releasing a vehicle that nobody holds.
	ErrVehicleAlreadyAvailable = errs.NewConflictError("vehicle", "vehicle is already available")
	// ErrDuplicateVehicle is returned when a registration number is already in the fleet.
	ErrDuplicateVehicle = errs.NewConflictError("vehicle", "vehicle number already registered")
)

// Provider is the aggregate root of a logistics provider and its fleet.
//
// Vehicles are indexed by registration number, so lookup, reservation and
// release never scan the fleet. order keeps registration order for listing.
//
// Provider follows these invariants:
//   - Vehicle numbers are unique within the fleet
//   - A vehicle is reserved by at most one order at a time
//   - Can only be created through NewProvider or RestoreProvider
type Provider struct {
	id       kernel.UUID
	name     string
	phone    string
	verified bool
	vehicles map[string]*Vehicle
	order    []string
	guard    guard.ConstructorGuard
}

// NewProvider creates a provider with an empty fleet.
//
// Example:
//
//	p, err := logistics.NewProvider(kernel.NewUUID(), "Bengal Freight", "+913300000000", true)
//	v, _ := logistics.NewVehicle("WB-12-V-100", logistics.CapacityLarge, 20, logistics.Driver{Name: "Ravi"})
//	err = p.AddVehicle(v)
func NewProvider(id kernel.UUID, name, phone string, verified bool) (*Provider, error) {
	return RestoreProvider(id, name, phone, verified, nil)
}

// RestoreProvider rebuilds a provider and its fleet from storage. vehicles
// are kept in the given order.
func RestoreProvider(id kernel.UUID, name, phone string, verified bool, vehicles []*Vehicle) (*Provider, error) {
	p := &Provider{
		phone:    phone,
		verified: verified,
		vehicles: make(map[string]*Vehicle, len(vehicles)),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setID(id), p.setName(name)); err != nil {
		return nil, err
	}
	for _, v := range vehicles {
		if err := p.AddVehicle(v); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Provider) Validate() error {
	if p == nil {
		return ErrProviderIsNotConstructed
	}
	return p.guard.Validate(ErrProviderIsNotConstructed)
}

func (p *Provider) IsEqual(other *Provider) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Provider) ID() kernel.UUID {
	return p.id
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) Phone() string {
	return p.phone
}

func (p *Provider) IsVerified() bool {
	return p.verified
}

// Vehicles returns the fleet in registration order.
func (p *Provider) Vehicles() []*Vehicle {
	out := make([]*Vehicle, 0, len(p.order))
	for _, number := range p.order {
		out = append(out, p.vehicles[number])
	}
	return out
}

// ReservedVehicles returns the vehicles currently marked unavailable, in
// registration order.
func (p *Provider) ReservedVehicles() []*Vehicle {
	out := make([]*Vehicle, 0, len(p.order))
	for _, v := range p.Vehicles() {
		if !v.available {
			out = append(out, v)
		}
	}
	return out
}

// AddVehicle registers v in the fleet.
func (p *Provider) AddVehicle(v *Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if _, ok := p.vehicles[v.number]; ok {
		return ErrDuplicateVehicle
	}
	p.vehicles[v.number] = v
	p.order = append(p.order, v.number)
	return nil
}

// Vehicle looks up a vehicle by registration number.
//
// Returns:
//   - *Vehicle: the vehicle
//   - error: ObjectNotFoundError when the fleet has no such vehicle
func (p *Provider) Vehicle(number string) (*Vehicle, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrVehicleNumberIsRequired
	}
	v, ok := p.vehicles[number]
	if !ok {
		return nil, errs.NewObjectNotFoundError("vehicleNumber", number)
	}
	return v, nil
}

// ReserveVehicle marks the vehicle unavailable for an assignment.
//
// Returns:
//   - *Vehicle: the reserved vehicle, for the driver snapshot
//   - error: ObjectNotFoundError or ErrVehicleUnavailable
func (p *Provider) ReserveVehicle(number string) (*Vehicle, error) {
	v, err := p.Vehicle(number)
	if err != nil {
		return nil, err
	}
	if !v.available {
		return nil, ErrVehicleUnavailable
	}
	v.available = false
	return v, nil
}

// ReleaseVehicle makes the vehicle available again. Releasing an available
// vehicle is a no-op; it returns whether anything changed.
func (p *Provider) ReleaseVehicle(number string) (bool, error) {
	v, err := p.Vehicle(number)
	if err != nil {
		return false, err
	}
	if v.available {
		return false, nil
	}
	v.available = true
	return true, nil
}

// MoveVehicle records the reported position of the vehicle.
func (p *Provider) MoveVehicle(number string, point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	v, err := p.Vehicle(number)
	if err != nil {
		return err
	}
	v.location = &point
	return nil
}

func (p *Provider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Provider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}
