package commands

import (
	"errors"
	"strings"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
	"ricetrade/internal/pkg/guard"
)

var ErrAssignLogisticsCommandIsNotConstructed = errors.New(
	"AssignLogisticsCommand must be created via NewAssignLogisticsCommand constructor",
)

// AssignLogisticsCommand asks to put one of a provider's vehicles on an order.
type AssignLogisticsCommand struct { //nolint:recvcheck //using for validation
	orderRequest
	providerID    kernel.UUID
	vehicleNumber string

	guard guard.ConstructorGuard
}

func NewAssignLogisticsCommand(
	actor identity.Actor,
	orderID kernel.UUID,
	providerID kernel.UUID,
	vehicleNumber string,
) (AssignLogisticsCommand, error) {
	cmd := AssignLogisticsCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setProviderID(providerID),
		cmd.setVehicleNumber(vehicleNumber),
	); err != nil {
		return AssignLogisticsCommand{}, err
	}

	return cmd, nil
}

func (c AssignLogisticsCommand) Validate() error {
	return c.guard.Validate(ErrAssignLogisticsCommandIsNotConstructed)
}

func (c AssignLogisticsCommand) ProviderID() kernel.UUID {
	return c.providerID
}

func (c AssignLogisticsCommand) VehicleNumber() string {
	return c.vehicleNumber
}

func (c *AssignLogisticsCommand) setProviderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("logisticsProviderId", err)
	}
	c.providerID = id
	return nil
}

func (c *AssignLogisticsCommand) setVehicleNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("vehicleNumber")
	}
	c.vehicleNumber = number
	return nil
}
