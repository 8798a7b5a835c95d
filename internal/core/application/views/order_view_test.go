package views_test

import (
	"encoding/json"
	"testing"
	"time"

	"ricetrade/internal/core/application/views"
	"ricetrade/internal/core/domain/model/directory"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignedOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	point, err := kernel.NewGeoPoint(23.23, 87.86)
	require.NoError(t, err)
	addr, err := order.NewAddress("Mill Road", "Burdwan", "WB", "713101", point)
	require.NoError(t, err)
	terms, err := order.NewTerms(10, decimal.NewFromInt(32000), decimal.NewFromInt(320000), decimal.NewFromInt(3200), decimal.NewFromInt(4500))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		terms, addr, addr, "fragile", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	_, err = o.ChangeStatus(order.Paid)
	require.NoError(t, err)

	providerID := kernel.NewUUID()
	l, err := order.NewLogistics(providerID, "V-100", "Ravi", "+91", "123456", "654321")
	require.NoError(t, err)
	require.NoError(t, o.AssignLogistics(l))
	return o, providerID
}

func summaries(o *order.Order, providerID kernel.UUID) views.Summaries {
	return views.Summaries{
		Parties: map[kernel.UUID]directory.Party{
			o.SellerID(): {ID: o.SellerID(), Name: "Annapurna Mills", Phone: "+91111", City: "Burdwan"},
			o.BuyerID():  {ID: o.BuyerID(), Name: "Kolkata Traders", Phone: "+91222", City: "Kolkata"},
			providerID:   {ID: providerID, Name: "Bengal Freight", City: "Howrah"},
		},
		Products: map[kernel.UUID]directory.Product{
			o.ProductID(): {ID: o.ProductID(), Type: "basmati"},
		},
	}
}

func TestNewOrder_Projection(t *testing.T) {
	o, providerID := assignedOrder(t)
	s := summaries(o, providerID)

	t.Run("seller_sees_own_name_and_pickup_code", func(t *testing.T) {
		v := views.NewOrder(o, identity.RoleSeller, s)

		assert.Equal(t, "Annapurna Mills", v.Seller.Name)
		assert.Equal(t, "processing", v.Status)
		assert.Equal(t, "basmati", v.Product.Type)
		assert.Equal(t, "Bengal Freight", v.Logistics.Provider.Name)
		assert.Equal(t, "123456", v.Logistics.PickupOTP)
		assert.Empty(t, v.Logistics.DeliveryOTP)
	})

	t.Run("buyer_sees_alias_and_delivery_code", func(t *testing.T) {
		v := views.NewOrder(o, identity.RoleBuyer, s)
		id := o.SellerID().String()

		assert.Equal(t, "Burdwan Rice Mill #"+id[len(id)-4:], v.Seller.Name)
		assert.Empty(t, v.Seller.Phone)
		assert.Equal(t, "Kolkata Traders", v.Buyer.Name)
		assert.Empty(t, v.Logistics.PickupOTP)
		assert.Equal(t, "654321", v.Logistics.DeliveryOTP)
	})

	t.Run("provider_sees_both_codes", func(t *testing.T) {
		v := views.NewOrder(o, identity.RoleLogistics, s)

		assert.Equal(t, "123456", v.Logistics.PickupOTP)
		assert.Equal(t, "654321", v.Logistics.DeliveryOTP)
	})

	t.Run("missing_summaries_are_omitted", func(t *testing.T) {
		v := views.NewOrder(o, identity.RoleBuyer, views.Summaries{})

		assert.Nil(t, v.Seller)
		assert.Nil(t, v.Product)
		assert.Nil(t, v.Logistics.Provider)
		assert.Equal(t, o.SellerID().String(), v.SellerID)
	})

	t.Run("serializes_geojson_points", func(t *testing.T) {
		raw, err := json.Marshal(views.NewOrder(o, identity.RoleSeller, s))
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(raw, &doc))
		pickup := doc["pickupAddress"].(map[string]any)["coordinates"].(map[string]any)
		assert.Equal(t, "Point", pickup["type"])
		assert.Equal(t, []any{87.86, 23.23}, pickup["coordinates"])
		assert.Equal(t, "32000", doc["pricePerTon"], "money is an exact decimal string")
		assert.Equal(t, "320000", doc["totalAmount"])
	})
}

func TestNewLocationUpdate(t *testing.T) {
	id := kernel.NewUUID()
	p, _ := kernel.NewGeoPoint(10, 20)

	u := views.NewLocationUpdate(id, p)

	assert.Equal(t, id.String(), u.OrderID)
	assert.Equal(t, []float64{20, 10}, u.Location.Coordinates)
}
