package commands

import (
	"context"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies the generic status write.
//
// Writes to cancelled, processing and in_transit are gated by the access
// policy action returned by services.ActionForStatus; other writes require
// the caller to be a stakeholder of the order. Cancelling an order with a
// reserved vehicle releases that vehicle in the same transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
	observer   TransitionObserver
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	notifier ports.Notifier,
	observer TransitionObserver,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		observer:   observerOrNoop(observer),
	}
}

// Handle returns the order as committed. Re-submitting the current status
// returns the order unchanged and announces nothing.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	action, guarded := services.ActionForStatus(cmd.Status())
	if !guarded {
		action = services.ViewOrder
	}
	if err = h.policy.Authorize(cmd.Actor(), action, o); err != nil {
		return nil, err
	}

	transition, err := o.ChangeStatus(cmd.Status())
	if err != nil {
		return nil, err
	}
	if !transition.Changed() {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if ref := transition.Released; ref != nil {
		if err = uow.ProviderRepository().UpdateVehicleAvailability(ctx, ref.ProviderID, ref.VehicleNumber, false, true); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.observer.ObserveTransition(transition.From, transition.To)

	event := ports.OrderEvent{
		Name:       ports.EventOrderStatusUpdated,
		Order:      o,
		Recipients: []identity.Role{identity.RoleBuyer, identity.RoleSeller, identity.RoleLogistics},
	}
	if transition.Released != nil {
		event.FormerProvider = &transition.Released.ProviderID
	}
	h.notifier.Notify(ctx, event)

	return o, nil
}
