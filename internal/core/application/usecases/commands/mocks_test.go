package commands_test

import (
	"context"
	"testing"
	"time"

	"ricetrade/internal/core/application/usecases/commands"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListBySeller(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderRepository) ListByProvider(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderRepository) ListHoldingVehicles(ctx context.Context) ([]*order.Order, error) {
	return m.list(m.Called(ctx))
}

func (m *MockOrderRepository) list(args mock.Arguments) ([]*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockProviderRepository struct{ mock.Mock }

func (m *MockProviderRepository) Add(ctx context.Context, p *logistics.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepository) Update(ctx context.Context, p *logistics.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepository) Get(ctx context.Context, id kernel.UUID) (*logistics.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetAll(ctx context.Context) ([]*logistics.Provider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*logistics.Provider), args.Error(1)
}

func (m *MockProviderRepository) UpdateVehicleAvailability(
	ctx context.Context, providerID kernel.UUID, number string, from, to bool,
) error {
	args := m.Called(ctx, providerID, number, from, to)
	return args.Error(0)
}

func (m *MockProviderRepository) ReleaseIdleVehicle(
	ctx context.Context, providerID kernel.UUID, number string,
) (bool, error) {
	args := m.Called(ctx, providerID, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockProviderRepository) UpdateVehicleLocation(
	ctx context.Context, providerID kernel.UUID, number string, point kernel.GeoPoint,
) error {
	args := m.Called(ctx, providerID, number, point)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProviderRepository() ports.ProviderRepository {
	args := m.Called()
	return args.Get(0).(ports.ProviderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event ports.OrderEvent) {
	m.Called(ctx, event)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObserveTransition(from, to order.Status) {
	m.Called(from, to)
}

func eventNamed(name string) any {
	return mock.MatchedBy(func(e ports.OrderEvent) bool { return e.Name == name })
}

type fixedCodes struct{}

func (fixedCodes) NewHandoffCodes() (string, string, error) {
	return "111111", "222222", nil
}

const vehicleNumber = "WB-12-V-100"

func newActor(t *testing.T, role identity.Role, id kernel.UUID, verified bool) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(id, role, verified)
	require.NoError(t, err)
	return a
}

func paidOrder(t *testing.T) *order.Order {
	t.Helper()
	point, err := kernel.NewGeoPoint(23.23, 87.86)
	require.NoError(t, err)
	addr, err := order.NewAddress("Mill Road", "Burdwan", "WB", "713101", point)
	require.NoError(t, err)
	terms, err := order.NewTerms(10, decimal.NewFromInt(32000), decimal.NewFromInt(320000), decimal.NewFromInt(3200), decimal.NewFromInt(4500))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		terms, addr, addr, "", time.Now())
	require.NoError(t, err)
	_, err = o.ChangeStatus(order.Paid)
	require.NoError(t, err)
	return o
}

func provider(t *testing.T) *logistics.Provider {
	t.Helper()
	p, err := logistics.NewProvider(kernel.NewUUID(), "Bengal Freight", "", true)
	require.NoError(t, err)
	v, err := logistics.NewVehicle(vehicleNumber, logistics.CapacityLarge, 20, logistics.Driver{Name: "Ravi", Phone: "+91"})
	require.NoError(t, err)
	require.NoError(t, p.AddVehicle(v))
	return p
}

// processingOrder returns an order whose logistics carries pickup code
// 111111 and delivery code 222222.
func processingOrder(t *testing.T) (*order.Order, *logistics.Provider) {
	t.Helper()
	o := paidOrder(t)
	p := provider(t)
	_, err := services.NewLogisticsAssigner(fixedCodes{}).Assign(o, p, vehicleNumber)
	require.NoError(t, err)
	return o, p
}

func inTransitOrder(t *testing.T) (*order.Order, *logistics.Provider) {
	t.Helper()
	o, p := processingOrder(t)
	require.NoError(t, o.ConfirmPickup("111111"))
	return o, p
}
