package queries

import (
	"errors"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/pkg/errs"
	"ricetrade/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders of the caller in one of its roles:
// orders sold by a seller, bought by a buyer, or carried by a provider.
//
// Example:
//
//	query, err := NewListOrdersQuery(actor, identity.RoleSeller)
//	orders, err := handler.Handle(ctx, query) // newest first
type ListOrdersQuery struct {
	actor identity.Actor
	role  identity.Role

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor identity.Actor, role identity.Role) (ListOrdersQuery, error) {
	if err := actor.ID().Validate(); err != nil || !actor.Role().IsValid() {
		return ListOrdersQuery{}, errs.NewValueIsRequiredError("actor")
	}
	if !role.IsValid() {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("role")
	}
	return ListOrdersQuery{actor: actor, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() identity.Actor {
	return q.actor
}

func (q ListOrdersQuery) Role() identity.Role {
	return q.role
}
