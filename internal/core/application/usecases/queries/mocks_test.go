package queries_test

import (
	"context"
	"testing"
	"time"

	"ricetrade/internal/core/domain/model/directory"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListBySeller(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderReader) ListByBuyer(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderReader) ListByProvider(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderReader) list(args mock.Arguments) ([]*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) Parties(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]directory.Party, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]directory.Party), args.Error(1)
}

func (m *MockDirectory) Products(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]directory.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]directory.Product), args.Error(1)
}

func newActor(t *testing.T, role identity.Role, id kernel.UUID) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(id, role, true)
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, sellerID kernel.UUID) *order.Order {
	t.Helper()
	point, err := kernel.NewGeoPoint(23.23, 87.86)
	require.NoError(t, err)
	addr, err := order.NewAddress("Mill Road", "Burdwan", "WB", "713101", point)
	require.NoError(t, err)
	terms, err := order.NewTerms(10, decimal.NewFromInt(32000), decimal.NewFromInt(320000), decimal.NewFromInt(3200), decimal.NewFromInt(4500))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), sellerID, kernel.NewUUID(),
		terms, addr, addr, "", time.Now())
	require.NoError(t, err)
	return o
}
