// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence of orders and fleets, directory lookups and
// notification delivery.
package ports

import (
	"context"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an existing order if its stored version still equals
	// aggregate.Version(). On success the aggregate is marked with the new
	// version; otherwise an errs.ConflictError is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or fails with errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListBySeller, ListByBuyer and ListByProvider return the orders of one
	// party, newest first.
	ListBySeller(ctx context.Context, sellerID kernel.UUID) ([]*order.Order, error)
	ListByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error)
	ListByProvider(ctx context.Context, providerID kernel.UUID) ([]*order.Order, error)

	// ListHoldingVehicles returns every order in processing or in_transit.
	ListHoldingVehicles(ctx context.Context) ([]*order.Order, error)
}
