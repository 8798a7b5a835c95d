package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
	"ricetrade/internal/pkg/errs"
)

// VerifyDeliveryOTPCommandHandler confirms the delivery handoff, stamps the
// delivery time and frees the vehicle in the same unit of work. The vehicle
// release never blocks a delivery: a vehicle that is already free is left
// as is, and a vehicle missing from the fleet is only logged.
type VerifyDeliveryOTPCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
	observer   TransitionObserver
	logger     *slog.Logger
	now        func() time.Time
}

func NewVerifyDeliveryOTPCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	notifier ports.Notifier,
	observer TransitionObserver,
	logger *slog.Logger,
) VerifyDeliveryOTPCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return VerifyDeliveryOTPCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		observer:   observerOrNoop(observer),
		logger:     logger.With("component", "verify_delivery"),
		now:        time.Now,
	}
}

func (h VerifyDeliveryOTPCommandHandler) Handle(ctx context.Context, cmd VerifyOTPCommand) (*order.Order, error) {
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
	vehicle, err := o.ConfirmDelivery(cmd.OTP(), h.now().UTC())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	err = uow.ProviderRepository().UpdateVehicleAvailability(ctx, vehicle.ProviderID, vehicle.VehicleNumber, false, true)
	switch {
	case err == nil, errors.Is(err, logistics.ErrVehicleAlreadyAvailable):
	case errors.Is(err, errs.ErrObjectNotFound):
		h.logger.WarnContext(ctx, "delivered order names an unknown vehicle",
			"order_id", o.ID().String(),
			"provider_id", vehicle.ProviderID.String(),
			"vehicle_number", vehicle.VehicleNumber,
		)
	default:
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.observer.ObserveTransition(from, o.Status())

	h.notifier.Notify(ctx, ports.OrderEvent{
		Name:       ports.EventOrderDelivered,
		Order:      o,
		Recipients: []identity.Role{identity.RoleBuyer, identity.RoleSeller},
	})

	return o, nil
}
