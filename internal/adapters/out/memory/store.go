// Package memory is an in-process implementation of the fulfillment store.
// It backs the service when no database is configured and gives tests a
// store with the same transactional behaviour as the PostgreSQL adapter.
//
// One transaction runs at a time. Writes of an open transaction are staged
// and become visible to others only on Commit; reads outside a transaction
// always see committed state.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"ricetrade/internal/core/domain/model/directory"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without an open transaction.
var ErrNoTransaction = errors.New("memory: no open transaction")

type tables struct {
	orders    map[kernel.UUID]*order.Order
	providers map[kernel.UUID]*logistics.Provider
}

func newTables() *tables {
	return &tables{
		orders:    make(map[kernel.UUID]*order.Order),
		providers: make(map[kernel.UUID]*logistics.Provider),
	}
}

// Store holds committed aggregates and the directory summaries.
type Store struct {
	tx   chan struct{}
	mu   sync.RWMutex
	data *tables

	parties  map[kernel.UUID]directory.Party
	products map[kernel.UUID]directory.Product

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		tx:       make(chan struct{}, 1),
		data:     newTables(),
		parties:  make(map[kernel.UUID]directory.Party),
		products: make(map[kernel.UUID]directory.Product),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PutParty registers a directory summary.
func (s *Store) PutParty(p directory.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[p.ID] = p
}

// PutProduct registers a catalog summary.
func (s *Store) PutProduct(p directory.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// Parties implements ports.DirectoryReader.
func (s *Store) Parties(_ context.Context, ids []kernel.UUID) (map[kernel.UUID]directory.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[kernel.UUID]directory.Party, len(ids))
	for _, id := range ids {
		if p, ok := s.parties[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// Products implements ports.DirectoryReader.
func (s *Store) Products(_ context.Context, ids []kernel.UUID) (map[kernel.UUID]directory.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[kernel.UUID]directory.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes between Begin and Commit. Without Begin every
// repository call commits on its own. A unit must not be shared between
// goroutines, and a goroutine holding an open unit must not Begin another.
type UnitOfWork struct {
	store  *Store
	staged *tables
}

// Begin waits until no other transaction is open.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.staged != nil {
		return nil
	}
	select {
	case u.store.tx <- struct{}{}:
		u.staged = newTables()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}

	u.store.mu.Lock()
	for id, o := range u.staged.orders {
		u.store.data.orders[id] = o
	}
	for id, p := range u.staged.providers {
		u.store.data.providers[id] = p
	}
	u.store.mu.Unlock()

	u.end()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}
	u.end()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) ProviderRepository() ports.ProviderRepository {
	return &ProviderRepository{uow: u}
}

func (u *UnitOfWork) end() {
	u.staged = nil
	<-u.store.tx
}

// view resolves reads through staged writes first. Outside a transaction
// staged and committed are the same tables.
type view struct {
	committed *tables
	staged    *tables
}

func (v view) order(id kernel.UUID) (*order.Order, bool) {
	if o, ok := v.staged.orders[id]; ok {
		return o, true
	}
	o, ok := v.committed.orders[id]
	return o, ok
}

func (v view) provider(id kernel.UUID) (*logistics.Provider, bool) {
	if p, ok := v.staged.providers[id]; ok {
		return p, true
	}
	p, ok := v.committed.providers[id]
	return p, ok
}

func (v view) orders() []*order.Order {
	out := make([]*order.Order, 0, len(v.committed.orders)+len(v.staged.orders))
	for id, o := range v.committed.orders {
		if _, shadowed := v.staged.orders[id]; !shadowed || v.staged == v.committed {
			out = append(out, o)
		}
	}
	if v.staged != v.committed {
		for _, o := range v.staged.orders {
			out = append(out, o)
		}
	}
	return out
}

func (v view) providers() []*logistics.Provider {
	out := make([]*logistics.Provider, 0, len(v.committed.providers)+len(v.staged.providers))
	for id, p := range v.committed.providers {
		if _, shadowed := v.staged.providers[id]; !shadowed || v.staged == v.committed {
			out = append(out, p)
		}
	}
	if v.staged != v.committed {
		for _, p := range v.staged.providers {
			out = append(out, p)
		}
	}
	return out
}

// do runs fn against the unit's view while holding the store lock.
func (u *UnitOfWork) do(fn func(v view) error) error {
	if u.staged != nil {
		u.store.mu.RLock()
		defer u.store.mu.RUnlock()
		return fn(view{committed: u.store.data, staged: u.staged})
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(view{committed: u.store.data, staged: u.store.data})
}
