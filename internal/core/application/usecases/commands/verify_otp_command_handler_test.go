package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"ricetrade/internal/core/application/usecases/commands"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
	"ricetrade/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifyPickupOTPCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	o, p := processingOrder(t)
	carrier := newActor(t, identity.RoleLogistics, p.ID(), false)
	cmd, err := commands.NewVerifyOTPCommand(carrier, o.ID(), "111111")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotifier)
	observer := new(MockObserver)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		observer.On("ObserveTransition", order.Processing, order.InTransit).Once(),
		notifier.On("Notify", ctx, eventNamed(ports.EventOrderInTransit)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewVerifyPickupOTPCommandHandler(factory, services.NewAccessPolicy(), notifier, observer)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, got.Status())
	mock.AssertExpectationsForObjects(t, factory, uow, orderRepo, notifier, observer)
}

func TestVerifyPickupOTPCommandHandler_Handle_WrongCode(t *testing.T) {
	ctx := t.Context()

	o, p := processingOrder(t)
	carrier := newActor(t, identity.RoleLogistics, p.ID(), false)
	cmd, err := commands.NewVerifyOTPCommand(carrier, o.ID(), "222222")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotifier)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewVerifyPickupOTPCommandHandler(factory, services.NewAccessPolicy(), notifier, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidOTP)
	assert.Equal(t, order.Processing, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestVerifyPickupOTPCommandHandler_Handle_OtherProviderIsForbidden(t *testing.T) {
	ctx := t.Context()

	o, _ := processingOrder(t)
	other := provider(t)
	carrier := newActor(t, identity.RoleLogistics, other.ID(), true)
	cmd, err := commands.NewVerifyOTPCommand(carrier, o.ID(), "111111")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewVerifyPickupOTPCommandHandler(factory, services.NewAccessPolicy(), new(MockNotifier), nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.Processing, o.Status())
}

func TestVerifyPickupOTPCommandHandler_Handle_StaleVersion(t *testing.T) {
	ctx := t.Context()

	// Given a concurrent writer bumped the order after it was loaded
	o, p := processingOrder(t)
	carrier := newActor(t, identity.RoleLogistics, p.ID(), false)
	cmd, err := commands.NewVerifyOTPCommand(carrier, o.ID(), "111111")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotifier)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(errs.NewConflictError("order", "version changed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewVerifyPickupOTPCommandHandler(factory, services.NewAccessPolicy(), notifier, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestVerifyDeliveryOTPCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	// Given an order in transit
	o, p := inTransitOrder(t)
	carrier := newActor(t, identity.RoleLogistics, p.ID(), false)
	cmd, err := commands.NewVerifyOTPCommand(carrier, o.ID(), "222222")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	providerRepo := new(MockProviderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	observer := new(MockObserver)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		providerRepo.On("UpdateVehicleAvailability", ctx, p.ID(), vehicleNumber, false, true).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		observer.On("ObserveTransition", order.InTransit, order.Delivered).Once(),
		notifier.On("Notify", ctx, eventNamed(ports.EventOrderDelivered)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewVerifyDeliveryOTPCommandHandler(factory, services.NewAccessPolicy(), notifier, observer, discardLogger())

	// When the provider presents the delivery code
	got, err := handler.Handle(ctx, cmd)

	// Then the order is delivered, stamped and the vehicle released
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, got.Status())
	assert.NotNil(t, got.Logistics().ActualDeliveryTime())
	mock.AssertExpectationsForObjects(t, factory, uow, orderRepo, providerRepo, notifier, observer)
}

func TestVerifyDeliveryOTPCommandHandler_Handle_BeforePickup(t *testing.T) {
	ctx := t.Context()

	o, p := processingOrder(t)
	carrier := newActor(t, identity.RoleLogistics, p.ID(), false)
	cmd, err := commands.NewVerifyOTPCommand(carrier, o.ID(), "222222")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewVerifyDeliveryOTPCommandHandler(factory, services.NewAccessPolicy(), new(MockNotifier), nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.Processing, o.Status())
	uow.AssertNotCalled(t, "ProviderRepository")
}

func TestVerifyDeliveryOTPCommandHandler_Handle_VehicleRelease(t *testing.T) {
	tests := []struct {
		name       string
		releaseErr error
		wantErr    error
	}{
		{name: "vehicle_already_available", releaseErr: logistics.ErrVehicleAlreadyAvailable},
		{name: "vehicle_missing_from_fleet", releaseErr: errs.NewObjectNotFoundError("vehicle", vehicleNumber)},
		{name: "store_failure", releaseErr: errors.New("connection reset"), wantErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			// Given an order in transit whose vehicle cannot be flipped back
			o, p := inTransitOrder(t)
			carrier := newActor(t, identity.RoleLogistics, p.ID(), false)
			cmd, err := commands.NewVerifyOTPCommand(carrier, o.ID(), "222222")
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			providerRepo := new(MockProviderRepository)
			uow := new(MockUoW)
			factory := new(MockUoWFactory)
			notifier := new(MockNotifier)

			factory.On("Create").Return(uow).Once()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
			orderRepo.On("Update", ctx, o).Return(nil).Once()
			uow.On("ProviderRepository").Return(providerRepo).Once()
			providerRepo.On("UpdateVehicleAvailability", ctx, p.ID(), vehicleNumber, false, true).
				Return(tt.releaseErr).Once()
			uow.On("Commit", ctx).Return(nil).Maybe()
			uow.On("Rollback", ctx).Return(nil).Once()
			notifier.On("Notify", ctx, eventNamed(ports.EventOrderDelivered)).Maybe()

			handler := commands.NewVerifyDeliveryOTPCommandHandler(factory, services.NewAccessPolicy(), notifier, nil, discardLogger())

			// When the provider presents the delivery code
			got, err := handler.Handle(ctx, cmd)

			// Then only a store failure stops the delivery
			if tt.wantErr != nil {
				require.EqualError(t, err, tt.wantErr.Error())
				uow.AssertNotCalled(t, "Commit", mock.Anything)
				notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.Delivered, got.Status())
			uow.AssertCalled(t, "Commit", ctx)
			notifier.AssertCalled(t, "Notify", ctx, eventNamed(ports.EventOrderDelivered))
		})
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
