package commands

import (
	"errors"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is the generic status write on an order.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(actor, orderID, "cancelled")
//	if err != nil {
//	    return err // unknown status name
//	}
//	o, err := handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderRequest
	status order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand parses the target status name. Unknown names
// are invalid input.
func NewUpdateOrderStatusCommand(actor identity.Actor, orderID kernel.UUID, status string) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// Status returns the requested target status.
func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *UpdateOrderStatusCommand) setStatus(s string) error {
	status, err := order.ParseStatus(s)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}
