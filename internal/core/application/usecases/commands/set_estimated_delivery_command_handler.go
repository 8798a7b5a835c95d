package commands

import (
	"context"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
)

type SetEstimatedDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
}

func NewSetEstimatedDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	notifier ports.Notifier,
) SetEstimatedDeliveryCommandHandler {
	return SetEstimatedDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
	}
}

func (h SetEstimatedDeliveryCommandHandler) Handle(ctx context.Context, cmd SetEstimatedDeliveryCommand) (*order.Order, error) {
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

	if err = h.policy.Authorize(cmd.Actor(), services.EstimateDelivery, o); err != nil {
		return nil, err
	}

	if err = o.SetEstimatedDelivery(cmd.EstimatedAt()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, ports.OrderEvent{
		Name:       ports.EventOrderStatusUpdated,
		Order:      o,
		Recipients: []identity.Role{identity.RoleBuyer, identity.RoleSeller},
	})

	return o, nil
}
