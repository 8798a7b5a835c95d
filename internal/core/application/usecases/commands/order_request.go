package commands

import (
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
)

// orderRequest is the part shared by every command acting on one order.
type orderRequest struct {
	actor   identity.Actor
	orderID kernel.UUID
}

// Actor returns the caller of the command.
func (r orderRequest) Actor() identity.Actor {
	return r.actor
}

// OrderID returns the target order.
func (r orderRequest) OrderID() kernel.UUID {
	return r.orderID
}

func (r *orderRequest) setActor(actor identity.Actor) error {
	if err := actor.ID().Validate(); err != nil || !actor.Role().IsValid() {
		return errs.NewValueIsRequiredError("actor")
	}
	r.actor = actor
	return nil
}

func (r *orderRequest) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	r.orderID = orderID
	return nil
}
