package order_test

import (
	"testing"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogistics(t *testing.T) {
	providerID := kernel.NewUUID()

	t.Run("should snapshot driver and codes", func(t *testing.T) {
		l, err := order.NewLogistics(providerID, " V-100 ", "Ravi", "+91", "100000", "999999")

		require.NoError(t, err)
		assert.Equal(t, "V-100", l.VehicleNumber())
		assert.Equal(t, "Ravi", l.DriverName())
		assert.True(t, l.IsAssignedTo(providerID))
		assert.Equal(t, order.VehicleRef{ProviderID: providerID, VehicleNumber: "V-100"}, l.Vehicle())
		assert.Nil(t, l.CurrentLocation())
		assert.Nil(t, l.EstimatedDeliveryTime())
		assert.Nil(t, l.ActualDeliveryTime())
	})

	t.Run("should reject malformed codes", func(t *testing.T) {
		tests := []struct {
			name             string
			pickup, delivery string
			want             error
		}{
			{"missing_pickup", "", "123456", errs.ErrValueIsRequired},
			{"short_code", "12345", "123456", errs.ErrValueIsInvalid},
			{"non_numeric", "12345a", "123456", errs.ErrValueIsInvalid},
			{"identical_codes", "123456", "123456", errs.ErrValueIsInvalid},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := order.NewLogistics(providerID, "V-1", "D", "P", tt.pickup, tt.delivery)
				require.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("should require provider and vehicle", func(t *testing.T) {
		_, err := order.NewLogistics(kernel.UUID{}, " ", "D", "P", "123456", "654321")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "vehicleNumber")
	})
}

func TestRestoreLogistics(t *testing.T) {
	point, _ := kernel.NewGeoPoint(10, 10)
	eta := placedAt

	l, err := order.RestoreLogistics(kernel.NewUUID(), "V-1", "D", "P", "123456", "654321", &point, &eta, nil)

	require.NoError(t, err)
	assert.Equal(t, &point, l.CurrentLocation())
	assert.Equal(t, &eta, l.EstimatedDeliveryTime())
	assert.Nil(t, l.ActualDeliveryTime())
}
