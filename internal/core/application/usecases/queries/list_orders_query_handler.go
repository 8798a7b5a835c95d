package queries

import (
	"context"

	"ricetrade/internal/core/application/views"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
	"ricetrade/internal/pkg/errs"
)

// ListOrdersQueryHandler returns the caller's orders newest first, each
// projected for the listing role and enriched with directory summaries.
type ListOrdersQueryHandler struct {
	orders    OrderReader
	directory ports.DirectoryReader
	policy    services.AccessPolicy
}

func NewListOrdersQueryHandler(
	orders OrderReader,
	directory ports.DirectoryReader,
	policy services.AccessPolicy,
) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, directory: directory, policy: policy}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]views.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if err := h.policy.AuthorizeListing(actor, query.Role()); err != nil {
		return nil, err
	}

	var (
		list []*order.Order
		err  error
	)
	switch query.Role() { //nolint:exhaustive // RoleUnknown rejected by the constructor
	case identity.RoleSeller:
		list, err = h.orders.ListBySeller(ctx, actor.ID())
	case identity.RoleBuyer:
		list, err = h.orders.ListByBuyer(ctx, actor.ID())
	case identity.RoleLogistics:
		list, err = h.orders.ListByProvider(ctx, actor.ID())
	default:
		return nil, errs.NewValueIsInvalidError("role")
	}
	if err != nil {
		return nil, err
	}

	summaries, err := loadSummaries(ctx, h.directory, list...)
	if err != nil {
		return nil, err
	}

	return views.NewOrders(list, query.Role(), summaries), nil
}
