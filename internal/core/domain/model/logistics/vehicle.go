package logistics

import (
	"errors"
	"fmt"
	"strings"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
	"ricetrade/internal/pkg/guard"
)

// ErrVehicleIsNotConstructed indicates a Vehicle that bypassed its constructors.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle constructor")

// CapacityClass is the size class of a vehicle.
type CapacityClass int

const (
	CapacityUnknown CapacityClass = iota
	CapacitySmall
	CapacityMedium
	CapacityLarge
)

var capacityNames = map[CapacityClass]string{
	CapacitySmall:  "small",
	CapacityMedium: "medium",
	CapacityLarge:  "large",
}

func ParseCapacityClass(s string) (CapacityClass, error) {
	for c, name := range capacityNames {
		if name == s {
			return c, nil
		}
	}
	return CapacityUnknown, errs.NewValueIsInvalidErrorWithCause("vehicleType",
		fmt.Errorf("%q is not a capacity class", s))
}

func (c CapacityClass) String() string {
	if name, ok := capacityNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c CapacityClass) Validate() error {
	if _, ok := capacityNames[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%d is not a capacity class", c))
	}
	return nil
}

// Driver is the person assigned to a vehicle.
type Driver struct {
	Name    string
	Phone   string
	License string
}

// Vehicle is a transport unit of a provider's fleet. It is an entity inside
// the Provider aggregate and is only mutated through it.
//
// available is false exactly while the vehicle is reserved for an order in
// processing or in_transit.
type Vehicle struct {
	number       string
	class        CapacityClass
	capacityTons float64
	driver       Driver
	available    bool
	location     *kernel.GeoPoint
	guard        guard.ConstructorGuard
}

// NewVehicle registers an available vehicle with no known position.
//
// Parameters:
//   - number: registration number, unique within the fleet
//   - class: capacity class
//   - capacityTons: load capacity, positive
//   - driver: assigned driver, name required
//
// Returns:
//   - *Vehicle: the new vehicle
//   - error: joined validation errors
func NewVehicle(number string, class CapacityClass, capacityTons float64, driver Driver) (*Vehicle, error) {
	return RestoreVehicle(number, class, capacityTons, driver, true, nil)
}

// RestoreVehicle rebuilds a persisted vehicle, including its availability.
func RestoreVehicle(
	number string,
	class CapacityClass,
	capacityTons float64,
	driver Driver,
	available bool,
	location *kernel.GeoPoint,
) (*Vehicle, error) {
	v := &Vehicle{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setNumber(number),
		v.setClass(class),
		v.setCapacity(capacityTons),
		v.setDriver(driver),
		v.setLocation(location),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) Number() string {
	return v.number
}

func (v *Vehicle) Class() CapacityClass {
	return v.class
}

func (v *Vehicle) CapacityTons() float64 {
	return v.capacityTons
}

func (v *Vehicle) Driver() Driver {
	return v.driver
}

func (v *Vehicle) IsAvailable() bool {
	return v.available
}

// Location returns the last reported position, nil when never reported.
func (v *Vehicle) Location() *kernel.GeoPoint {
	return v.location
}

func (v *Vehicle) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrVehicleNumberIsRequired
	}
	v.number = number
	return nil
}

func (v *Vehicle) setClass(class CapacityClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	v.class = class
	return nil
}

func (v *Vehicle) setCapacity(tons float64) error {
	if tons <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%v is not greater than 0", tons))
	}
	v.capacityTons = tons
	return nil
}

func (v *Vehicle) setDriver(d Driver) error {
	if strings.TrimSpace(d.Name) == "" {
		return errs.NewValueIsRequiredError("driver.name")
	}
	v.driver = d
	return nil
}

func (v *Vehicle) setLocation(location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	v.location = location
	return nil
}
