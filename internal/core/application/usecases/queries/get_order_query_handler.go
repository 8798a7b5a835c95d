package queries

import (
	"context"

	"ricetrade/internal/core/application/views"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
)

// GetOrderQueryHandler returns one order projected for the caller's role.
// An unknown id is reported before the access check, so a stranger learns
// only that the order exists.
type GetOrderQueryHandler struct {
	orders    OrderReader
	directory ports.DirectoryReader
	policy    services.AccessPolicy
}

func NewGetOrderQueryHandler(
	orders OrderReader,
	directory ports.DirectoryReader,
	policy services.AccessPolicy,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, directory: directory, policy: policy}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (views.Order, error) {
	if err := query.Validate(); err != nil {
		return views.Order{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return views.Order{}, err
	}

	if err = h.policy.Authorize(query.Actor(), services.ViewOrder, o); err != nil {
		return views.Order{}, err
	}

	summaries, err := loadSummaries(ctx, h.directory, o)
	if err != nil {
		return views.Order{}, err
	}

	return views.NewOrder(o, query.Actor().Role(), summaries), nil
}
