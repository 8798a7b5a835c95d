package memory

import (
	"context"
	"sort"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store. Stored and
// returned aggregates are copies, so callers never share state through it.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(func(v view) error {
		if _, ok := v.order(aggregate.ID()); ok {
			return errs.NewConflictError("order", "already exists")
		}
		aggregate.MarkPersisted(1, r.uow.store.now())
		stored, err := cloneOrder(aggregate)
		if err != nil {
			return err
		}
		v.staged.orders[aggregate.ID()] = stored
		return nil
	})
}

// Update writes the aggregate when its version matches the stored one.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(func(v view) error {
		current, ok := v.order(aggregate.ID())
		if !ok {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		if current.Version() != aggregate.Version() {
			return errs.NewConflictError("order", "modified concurrently, reload and retry")
		}

		next := aggregate.Version() + 1
		stored, err := cloneOrder(aggregate)
		if err != nil {
			return err
		}
		now := r.uow.store.now()
		stored.MarkPersisted(next, now)
		v.staged.orders[aggregate.ID()] = stored
		aggregate.MarkPersisted(next, now)
		return nil
	})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *order.Order
	err := r.uow.do(func(v view) error {
		stored, ok := v.order(id)
		if !ok {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		var err error
		found, err = cloneOrder(stored)
		return err
	})
	return found, err
}

func (r *OrderRepository) ListBySeller(_ context.Context, sellerID kernel.UUID) ([]*order.Order, error) {
	return r.find(func(o *order.Order) bool { return o.IsSeller(sellerID) })
}

func (r *OrderRepository) ListByBuyer(_ context.Context, buyerID kernel.UUID) ([]*order.Order, error) {
	return r.find(func(o *order.Order) bool { return o.IsBuyer(buyerID) })
}

func (r *OrderRepository) ListByProvider(_ context.Context, providerID kernel.UUID) ([]*order.Order, error) {
	return r.find(func(o *order.Order) bool { return o.IsProvider(providerID) })
}

func (r *OrderRepository) ListHoldingVehicles(_ context.Context) ([]*order.Order, error) {
	return r.find(func(o *order.Order) bool { return o.Status().HoldsVehicle() })
}

// find returns matching orders, newest first.
func (r *OrderRepository) find(match func(*order.Order) bool) ([]*order.Order, error) {
	var out []*order.Order
	err := r.uow.do(func(v view) error {
		for _, stored := range v.orders() {
			if !match(stored) {
				continue
			}
			o, err := cloneOrder(stored)
			if err != nil {
				return err
			}
			out = append(out, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	if out == nil {
		out = []*order.Order{}
	}
	return out, nil
}
