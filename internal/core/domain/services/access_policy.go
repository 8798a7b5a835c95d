package services

import (
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/pkg/errs"
)

// Action is an operation on an order that needs authorization.
type Action int

const (
	ViewOrder Action = iota + 1
	CancelOrder
	AdvanceShipment
	AssignLogistics
	VerifyHandoff
	UpdateLocation
	EstimateDelivery
)

var actionNames = map[Action]string{
	ViewOrder:        "view order",
	CancelOrder:      "cancel order",
	AdvanceShipment:  "advance shipment",
	AssignLogistics:  "assign logistics",
	VerifyHandoff:    "verify handoff",
	UpdateLocation:   "update location",
	EstimateDelivery: "estimate delivery",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown action"
}

// rule answers whether actor may act on o, and why not.
type rule func(actor identity.Actor, o *order.Order) (bool, string)

// AccessPolicy decides per call which actor may act on an order. It holds no
// state besides its rule table, so every decision reflects the order as loaded.
//
// Rules:
//   - ViewOrder: the order's buyer, seller or assigned provider
//   - CancelOrder: the order's buyer or seller
//   - AdvanceShipment, VerifyHandoff, UpdateLocation, EstimateDelivery: the assigned provider
//   - AssignLogistics: the order's seller, with a verified account
type AccessPolicy struct {
	rules map[Action]rule
}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{rules: map[Action]rule{
		ViewOrder:        anyOf(isBuyer, isSeller, isProvider),
		CancelOrder:      anyOf(isBuyer, isSeller),
		AdvanceShipment:  isProvider,
		AssignLogistics:  allOf(isSeller, isVerified),
		VerifyHandoff:    isProvider,
		UpdateLocation:   isProvider,
		EstimateDelivery: isProvider,
	}}
}

// Authorize returns nil when actor may perform action on o, a ForbiddenError otherwise.
func (p AccessPolicy) Authorize(actor identity.Actor, action Action, o *order.Order) error {
	r, ok := p.rules[action]
	if !ok {
		return errs.NewForbiddenError(action.String(), "no rule")
	}
	if allowed, reason := r(actor, o); !allowed {
		return errs.NewForbiddenError(action.String(), reason)
	}
	return nil
}

// AuthorizeListing checks that actor lists the orders of its own role.
func (p AccessPolicy) AuthorizeListing(actor identity.Actor, role identity.Role) error {
	if actor.Role() != role {
		return errs.NewForbiddenError("list "+role.String()+" orders", "actor is a "+actor.Role().String())
	}
	return nil
}

// ActionForStatus maps a generic status write to the action that guards it.
// Writes to other statuses are not role gated and report false.
func ActionForStatus(target order.Status) (Action, bool) {
	switch target { //nolint:exhaustive // only guarded targets
	case order.Cancelled:
		return CancelOrder, true
	case order.Processing, order.InTransit:
		return AdvanceShipment, true
	default:
		return 0, false
	}
}

func isBuyer(a identity.Actor, o *order.Order) (bool, string) {
	return a.Role() == identity.RoleBuyer && o.IsBuyer(a.ID()), "not the buyer of this order"
}

func isSeller(a identity.Actor, o *order.Order) (bool, string) {
	return a.Role() == identity.RoleSeller && o.IsSeller(a.ID()), "not the seller of this order"
}

func isProvider(a identity.Actor, o *order.Order) (bool, string) {
	return a.Role() == identity.RoleLogistics && o.IsProvider(a.ID()), "not the assigned logistics provider"
}

func isVerified(a identity.Actor, _ *order.Order) (bool, string) {
	return a.IsVerified(), "account is not verified"
}

func anyOf(rules ...rule) rule {
	return func(a identity.Actor, o *order.Order) (bool, string) {
		for _, r := range rules {
			if ok, _ := r(a, o); ok {
				return true, ""
			}
		}
		return false, "no stake in this order"
	}
}

func allOf(rules ...rule) rule {
	return func(a identity.Actor, o *order.Order) (bool, string) {
		for _, r := range rules {
			if ok, why := r(a, o); !ok {
				return false, why
			}
		}
		return true, ""
	}
}
