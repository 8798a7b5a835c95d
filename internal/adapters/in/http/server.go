package http

import (
	"net/http"
	"time"

	"ricetrade/internal/core/application/usecases/commands"
	"ricetrade/internal/core/application/usecases/queries"
	"ricetrade/internal/core/application/views"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/ports"
	"ricetrade/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Subscriber opens a live feed of one notification channel.
type Subscriber interface {
	Subscribe(channel identity.ChannelKey) (<-chan ports.Message, func())
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	UpdateOrderStatus    commands.UpdateOrderStatusCommandHandler
	AssignLogistics      commands.AssignLogisticsCommandHandler
	VerifyPickup         commands.VerifyPickupOTPCommandHandler
	VerifyDelivery       commands.VerifyDeliveryOTPCommandHandler
	UpdateLocation       commands.UpdateLocationCommandHandler
	SetEstimatedDelivery commands.SetEstimatedDeliveryCommandHandler

	ListOrders queries.ListOrdersQueryHandler
	GetOrder   queries.GetOrderQueryHandler
}

// Server implements ServerInterface.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers  Handlers
	events    Subscriber
	keepAlive time.Duration
}

func NewServer(handlers Handlers, events Subscriber) *Server {
	return &Server{
		handlers:  handlers,
		events:    events,
		keepAlive: 25 * time.Second,
	}
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type listResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []views.Order `json:"data"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type assignLogisticsRequest struct {
	ProviderID    string `json:"providerId"`
	VehicleNumber string `json:"vehicleNumber"`
}

type otpRequest struct {
	OTP string `json:"otp"`
}

type locationRequest struct {
	Coordinates []float64 `json:"coordinates"`
}

type estimatedDeliveryRequest struct {
	EstimatedDeliveryTime time.Time `json:"estimatedDeliveryTime"`
}

func (s *Server) ListSellerOrders(ctx echo.Context) error {
	return s.listOrders(ctx, identity.RoleSeller)
}

func (s *Server) ListBuyerOrders(ctx echo.Context) error {
	return s.listOrders(ctx, identity.RoleBuyer)
}

func (s *Server) ListLogisticsOrders(ctx echo.Context) error {
	return s.listOrders(ctx, identity.RoleLogistics)
}

func (s *Server) listOrders(ctx echo.Context, role identity.Role) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(actor, role)
	if err != nil {
		return writeError(ctx, err)
	}

	list, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, listResponse{Success: true, Count: len(list), Data: list})
}

func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	actor, orderID, err := s.target(ctx, id)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, dataResponse{Success: true, Data: view})
}

func (s *Server) UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	actor, orderID, err := s.target(ctx, id)
	if err != nil {
		return writeError(ctx, err)
	}

	var body statusRequest
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, invalidBody(err))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(actor, orderID, body.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, actor, o, err)
}

func (s *Server) AssignLogistics(ctx echo.Context, id openapi_types.UUID) error {
	actor, orderID, err := s.target(ctx, id)
	if err != nil {
		return writeError(ctx, err)
	}

	var body assignLogisticsRequest
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, invalidBody(err))
	}

	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("providerId", err))
	}

	cmd, err := commands.NewAssignLogisticsCommand(actor, orderID, providerID, body.VehicleNumber)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.handlers.AssignLogistics.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, actor, o, err)
}

func (s *Server) VerifyPickup(ctx echo.Context, id openapi_types.UUID) error {
	actor, cmd, err := s.otpCommand(ctx, id)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.handlers.VerifyPickup.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, actor, o, err)
}

func (s *Server) VerifyDelivery(ctx echo.Context, id openapi_types.UUID) error {
	actor, cmd, err := s.otpCommand(ctx, id)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.handlers.VerifyDelivery.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, actor, o, err)
}

func (s *Server) UpdateLocation(ctx echo.Context, id openapi_types.UUID) error {
	actor, orderID, err := s.target(ctx, id)
	if err != nil {
		return writeError(ctx, err)
	}

	var body locationRequest
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, invalidBody(err))
	}

	cmd, err := commands.NewUpdateLocationCommand(actor, orderID, body.Coordinates)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.handlers.UpdateLocation.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, actor, o, err)
}

func (s *Server) SetEstimatedDelivery(ctx echo.Context, id openapi_types.UUID) error {
	actor, orderID, err := s.target(ctx, id)
	if err != nil {
		return writeError(ctx, err)
	}

	var body estimatedDeliveryRequest
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, invalidBody(err))
	}

	cmd, err := commands.NewSetEstimatedDeliveryCommand(actor, orderID, body.EstimatedDeliveryTime)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.handlers.SetEstimatedDelivery.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, actor, o, err)
}

func (s *Server) otpCommand(ctx echo.Context, id openapi_types.UUID) (identity.Actor, commands.VerifyOTPCommand, error) {
	actor, orderID, err := s.target(ctx, id)
	if err != nil {
		return identity.Actor{}, commands.VerifyOTPCommand{}, err
	}

	var body otpRequest
	if err := ctx.Bind(&body); err != nil {
		return identity.Actor{}, commands.VerifyOTPCommand{}, invalidBody(err)
	}

	cmd, err := commands.NewVerifyOTPCommand(actor, orderID, body.OTP)
	return actor, cmd, err
}

// target resolves the caller and the order addressed by the path.
func (s *Server) target(ctx echo.Context, id openapi_types.UUID) (identity.Actor, kernel.UUID, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return identity.Actor{}, kernel.UUID{}, err
	}
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return identity.Actor{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return actor, orderID, nil
}

// respond writes the changed order as the caller's role sees it.
func (s *Server) respond(ctx echo.Context, actor identity.Actor, o *order.Order, err error) error {
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, dataResponse{
		Success: true,
		Data:    views.NewOrder(o, actor.Role(), views.Summaries{}),
	})
}

func invalidBody(err error) error {
	return errs.NewValueIsInvalidErrorWithCause("body", err)
}
