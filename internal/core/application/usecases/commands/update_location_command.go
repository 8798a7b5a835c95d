package commands

import (
	"errors"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
	"ricetrade/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand reports the live position of a shipment.
// Coordinates arrive in GeoJSON order: longitude first.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	orderRequest
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewUpdateLocationCommand(actor identity.Actor, orderID kernel.UUID, coordinates []float64) (UpdateLocationCommand, error) {
	cmd := UpdateLocationCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setLocation(coordinates),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return cmd, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateLocationCommand) setLocation(coordinates []float64) error {
	if len(coordinates) == 0 {
		return errs.NewValueIsRequiredError("coordinates")
	}
	point, err := kernel.GeoPointFromLngLat(coordinates)
	if err != nil {
		return err
	}
	c.location = point
	return nil
}
