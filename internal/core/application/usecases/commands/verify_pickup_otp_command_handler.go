package commands

import (
	"context"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
)

// VerifyPickupOTPCommandHandler confirms the pickup handoff and moves the
// order to in_transit. A wrong code leaves the order as it was. Replaying
// the code after success is refused because the order is no longer processing.
type VerifyPickupOTPCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
	observer   TransitionObserver
}

func NewVerifyPickupOTPCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	notifier ports.Notifier,
	observer TransitionObserver,
) VerifyPickupOTPCommandHandler {
	return VerifyPickupOTPCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		observer:   observerOrNoop(observer),
	}
}

func (h VerifyPickupOTPCommandHandler) Handle(ctx context.Context, cmd VerifyOTPCommand) (*order.Order, error) {
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

	if err = h.policy.Authorize(cmd.Actor(), services.VerifyHandoff, o); err != nil {
		return nil, err
	}

	from := o.Status()
	if err = o.ConfirmPickup(cmd.OTP()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.observer.ObserveTransition(from, o.Status())

	h.notifier.Notify(ctx, ports.OrderEvent{
		Name:       ports.EventOrderInTransit,
		Order:      o,
		Recipients: []identity.Role{identity.RoleBuyer, identity.RoleSeller},
	})

	return o, nil
}
