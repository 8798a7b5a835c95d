package services

import (
	"errors"

	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"
)

// LogisticsAssigner is a domain service that attaches a provider's vehicle
// to an order.
//
// Key responsibilities:
//   - Reserving the vehicle on the provider aggregate
//   - Snapshotting the driver and issuing both handoff codes
//   - Moving the order to processing
//
// Both aggregates are changed together or not at all: if the order refuses
// the assignment the vehicle reservation is undone.
//
// Example usage:
//
//	assigner := services.NewLogisticsAssigner(services.NewRandomOTPGenerator())
//	vehicle, err := assigner.Assign(o, provider, "WB-12-V-100")
//	if errors.Is(err, logistics.ErrVehicleUnavailable) {
//	    // another order holds the vehicle
//	}
type LogisticsAssigner struct {
	otp OTPGenerator
}

func NewLogisticsAssigner(otp OTPGenerator) LogisticsAssigner {
	return LogisticsAssigner{otp: otp}
}

// Assign reserves vehicleNumber of p and assigns it to o.
//
// Returns:
//   - *logistics.Vehicle: the reserved vehicle
//   - error: ObjectNotFoundError for an unknown vehicle, ErrVehicleUnavailable,
//     a ConflictError when o cannot take an assignment, or a generator error
func (a LogisticsAssigner) Assign(o *order.Order, p *logistics.Provider, vehicleNumber string) (*logistics.Vehicle, error) {
	if err := errors.Join(o.Validate(), p.Validate()); err != nil {
		return nil, err
	}

	vehicle, err := p.ReserveVehicle(vehicleNumber)
	if err != nil {
		return nil, err
	}

	if err = a.attach(o, p, vehicle); err != nil {
		if _, releaseErr := p.ReleaseVehicle(vehicle.Number()); releaseErr != nil {
			return nil, errors.Join(err, releaseErr)
		}
		return nil, err
	}

	return vehicle, nil
}

func (a LogisticsAssigner) attach(o *order.Order, p *logistics.Provider, v *logistics.Vehicle) error {
	pickup, delivery, err := a.otp.NewHandoffCodes()
	if err != nil {
		return err
	}

	record, err := order.NewLogistics(p.ID(), v.Number(), v.Driver().Name, v.Driver().Phone, pickup, delivery)
	if err != nil {
		return err
	}

	return o.AssignLogistics(record)
}
