package commands

import (
	"context"

	"ricetrade/internal/core/application/views"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
)

// UpdateLocationCommandHandler stores a shipment position on the order and
// on the vehicle carrying it. Buyer and seller receive only the order id and
// the point.
type UpdateLocationCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
}

func NewUpdateLocationCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	notifier ports.Notifier,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
	}
}

func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (*order.Order, error) {
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

	if err = h.policy.Authorize(cmd.Actor(), services.UpdateLocation, o); err != nil {
		return nil, err
	}

	if err = o.UpdateLocation(cmd.Location()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	vehicle := o.Logistics().Vehicle()
	err = uow.ProviderRepository().UpdateVehicleLocation(ctx, vehicle.ProviderID, vehicle.VehicleNumber, cmd.Location())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, ports.OrderEvent{
		Name:       ports.EventLocationUpdated,
		Order:      o,
		Recipients: []identity.Role{identity.RoleBuyer, identity.RoleSeller},
		Payload:    views.NewLocationUpdate(o.ID(), cmd.Location()),
	})

	return o, nil
}
