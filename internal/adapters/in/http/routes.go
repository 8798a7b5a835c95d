package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of the embedded OpenAPI contract.
type ServerInterface interface {
	// GET /orders/seller
	ListSellerOrders(ctx echo.Context) error
	// GET /orders/buyer
	ListBuyerOrders(ctx echo.Context) error
	// GET /orders/logistics
	ListLogisticsOrders(ctx echo.Context) error
	// GET /orders/{id}
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	// PUT /orders/{id}/status
	UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error
	// PUT /orders/{id}/assign-logistics
	AssignLogistics(ctx echo.Context, id openapi_types.UUID) error
	// PUT /orders/{id}/verify-pickup
	VerifyPickup(ctx echo.Context, id openapi_types.UUID) error
	// PUT /orders/{id}/verify-delivery
	VerifyDelivery(ctx echo.Context, id openapi_types.UUID) error
	// PUT /orders/{id}/update-location
	UpdateLocation(ctx echo.Context, id openapi_types.UUID) error
	// PUT /orders/{id}/estimated-delivery
	SetEstimatedDelivery(ctx echo.Context, id openapi_types.UUID) error
	// GET /events
	StreamEvents(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListSellerOrders(ctx echo.Context) error {
	return w.Handler.ListSellerOrders(ctx)
}

func (w *ServerInterfaceWrapper) ListBuyerOrders(ctx echo.Context) error {
	return w.Handler.ListBuyerOrders(ctx)
}

func (w *ServerInterfaceWrapper) ListLogisticsOrders(ctx echo.Context) error {
	return w.Handler.ListLogisticsOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) AssignLogistics(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AssignLogistics(ctx, id)
}

func (w *ServerInterfaceWrapper) VerifyPickup(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.VerifyPickup(ctx, id)
}

func (w *ServerInterfaceWrapper) VerifyDelivery(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.VerifyDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateLocation(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateLocation(ctx, id)
}

func (w *ServerInterfaceWrapper) SetEstimatedDelivery(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SetEstimatedDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) StreamEvents(ctx echo.Context) error {
	return w.Handler.StreamEvents(ctx)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every route of the contract under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/orders/seller", w.ListSellerOrders)
	router.GET(baseURL+"/orders/buyer", w.ListBuyerOrders)
	router.GET(baseURL+"/orders/logistics", w.ListLogisticsOrders)
	router.GET(baseURL+"/orders/:id", w.GetOrder)
	router.PUT(baseURL+"/orders/:id/status", w.UpdateOrderStatus)
	router.PUT(baseURL+"/orders/:id/assign-logistics", w.AssignLogistics)
	router.PUT(baseURL+"/orders/:id/verify-pickup", w.VerifyPickup)
	router.PUT(baseURL+"/orders/:id/verify-delivery", w.VerifyDelivery)
	router.PUT(baseURL+"/orders/:id/update-location", w.UpdateLocation)
	router.PUT(baseURL+"/orders/:id/estimated-delivery", w.SetEstimatedDelivery)
	router.GET(baseURL+"/events", w.StreamEvents)
}
