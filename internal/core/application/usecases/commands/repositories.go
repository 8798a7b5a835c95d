// Package commands contains the operations that change orders and fleets.
// Every command follows the same pattern: constructor validation, access
// policy, one unit of work, and notifications after commit.
package commands

import (
	"context"

	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/ports"
)

// Transaction seams for the handlers. Order-only commands ask for the
// narrower OrderUoW so that the memory and postgres adapters can hand out
// a cheaper scope when fleets are not touched.
type (
	// TxManager opens and closes one business transaction.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory yields the order repository bound to the open transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProviderRepoFactory yields the fleet repository bound to the open transaction.
	ProviderRepoFactory interface {
		ProviderRepository() ports.ProviderRepository
	}

	// OrderUoW scopes status, payment and handoff changes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW scopes changes that move an order and a vehicle together, such
	// as assignment, cancellation and reconciliation. Handlers defer
	// Rollback right after Begin and rely on it being a no-op after Commit.
	UoW interface {
		TxManager
		OrderRepoFactory
		ProviderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// TransitionObserver is told about every committed status change.
type TransitionObserver interface {
	ObserveTransition(from, to order.Status)
}

type noopObserver struct{}

func (noopObserver) ObserveTransition(order.Status, order.Status) {}

func observerOrNoop(o TransitionObserver) TransitionObserver {
	if o == nil {
		return noopObserver{}
	}
	return o
}
