package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Writes made through its
// repositories become visible to others only after Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback discards uncommitted writes. Calling it after Commit is a
	// harmless error, so handlers defer it unconditionally.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProviderRepository() ProviderRepository
}
