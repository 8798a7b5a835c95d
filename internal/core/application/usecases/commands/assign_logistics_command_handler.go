package commands

import (
	"context"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
)

// AssignLogisticsCommandHandler attaches a provider's vehicle to an order
// and issues the handoff codes.
//
// The order write and the vehicle reservation share one unit of work. The
// reservation is a conditional write, so of two concurrent assignments of the
// same vehicle exactly one commits; the other fails with
// logistics.ErrVehicleUnavailable and leaves its order untouched.
type AssignLogisticsCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	assigner   services.LogisticsAssigner
	notifier   ports.Notifier
	observer   TransitionObserver
}

func NewAssignLogisticsCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	assigner services.LogisticsAssigner,
	notifier ports.Notifier,
	observer TransitionObserver,
) AssignLogisticsCommandHandler {
	return AssignLogisticsCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		assigner:   assigner,
		notifier:   notifier,
		observer:   observerOrNoop(observer),
	}
}

func (h AssignLogisticsCommandHandler) Handle(ctx context.Context, cmd AssignLogisticsCommand) (*order.Order, error) {
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
	providerRepo := uow.ProviderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(cmd.Actor(), services.AssignLogistics, o); err != nil {
		return nil, err
	}

	provider, err := providerRepo.Get(ctx, cmd.ProviderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	vehicle, err := h.assigner.Assign(o, provider, cmd.VehicleNumber())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = providerRepo.UpdateVehicleAvailability(ctx, provider.ID(), vehicle.Number(), true, false); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.observer.ObserveTransition(from, o.Status())

	h.notifier.Notify(ctx, ports.OrderEvent{
		Name:       ports.EventNewOrderAssigned,
		Order:      o,
		Recipients: []identity.Role{identity.RoleLogistics},
	})
	h.notifier.Notify(ctx, ports.OrderEvent{
		Name:       ports.EventLogisticsAssigned,
		Order:      o,
		Recipients: []identity.Role{identity.RoleBuyer},
	})

	return o, nil
}
