// Package queries contains the read side of the fulfillment core. Queries
// never open a unit of work; they read committed state and project it
// through the views package.
package queries

import (
	"context"

	"ricetrade/internal/core/application/views"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/ports"
)

// OrderReader is the read half of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	ListBySeller(ctx context.Context, sellerID kernel.UUID) ([]*order.Order, error)
	ListByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error)
	ListByProvider(ctx context.Context, providerID kernel.UUID) ([]*order.Order, error)
}

// loadSummaries fetches the parties and products referenced by orders in
// two directory calls.
func loadSummaries(ctx context.Context, dir ports.DirectoryReader, orders ...*order.Order) (views.Summaries, error) {
	partySet := make(map[kernel.UUID]struct{})
	productSet := make(map[kernel.UUID]struct{})
	for _, o := range orders {
		partySet[o.BuyerID()] = struct{}{}
		partySet[o.SellerID()] = struct{}{}
		if id := o.ProviderID(); id != nil {
			partySet[*id] = struct{}{}
		}
		productSet[o.ProductID()] = struct{}{}
	}
	if len(orders) == 0 {
		return views.Summaries{}, nil
	}

	parties, err := dir.Parties(ctx, keys(partySet))
	if err != nil {
		return views.Summaries{}, err
	}
	products, err := dir.Products(ctx, keys(productSet))
	if err != nil {
		return views.Summaries{}, err
	}

	return views.Summaries{Parties: parties, Products: products}, nil
}

func keys(set map[kernel.UUID]struct{}) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
