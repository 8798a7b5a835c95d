package services_test

import (
	"testing"
	"time"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

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

func providerWithVehicle(t *testing.T, number string) *logistics.Provider {
	t.Helper()
	p, err := logistics.NewProvider(kernel.NewUUID(), "Bengal Freight", "", true)
	require.NoError(t, err)
	v, err := logistics.NewVehicle(number, logistics.CapacityLarge, 20, logistics.Driver{Name: "Ravi", Phone: "+91"})
	require.NoError(t, err)
	require.NoError(t, p.AddVehicle(v))
	return p
}

func actor(t *testing.T, role identity.Role, id kernel.UUID, verified bool) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(id, role, verified)
	require.NoError(t, err)
	return a
}

type fixedCodes struct {
	pickup, delivery string
	err              error
}

func (f fixedCodes) NewHandoffCodes() (string, string, error) {
	return f.pickup, f.delivery, f.err
}
