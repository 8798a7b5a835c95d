package commands

import (
	"errors"
	"time"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
	"ricetrade/internal/pkg/guard"
)

var ErrSetEstimatedDeliveryCommandIsNotConstructed = errors.New(
	"SetEstimatedDeliveryCommand must be created via NewSetEstimatedDeliveryCommand constructor",
)

// SetEstimatedDeliveryCommand carries an arrival estimate chosen by the provider.
type SetEstimatedDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderRequest
	estimatedAt time.Time

	guard guard.ConstructorGuard
}

func NewSetEstimatedDeliveryCommand(
	actor identity.Actor,
	orderID kernel.UUID,
	estimatedAt time.Time,
) (SetEstimatedDeliveryCommand, error) {
	cmd := SetEstimatedDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setEstimatedAt(estimatedAt),
	); err != nil {
		return SetEstimatedDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c SetEstimatedDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrSetEstimatedDeliveryCommandIsNotConstructed)
}

func (c SetEstimatedDeliveryCommand) EstimatedAt() time.Time {
	return c.estimatedAt
}

func (c *SetEstimatedDeliveryCommand) setEstimatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("estimatedDeliveryTime")
	}
	c.estimatedAt = at.UTC()
	return nil
}
