package memory

import (
	"time"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"
)

func cloneOrder(o *order.Order) (*order.Order, error) {
	var l *order.Logistics
	if src := o.Logistics(); src != nil {
		var err error
		l, err = order.RestoreLogistics(
			src.ProviderID(),
			src.VehicleNumber(),
			src.DriverName(),
			src.DriverPhone(),
			src.PickupOTP(),
			src.DeliveryOTP(),
			clonePoint(src.CurrentLocation()),
			cloneTime(src.EstimatedDeliveryTime()),
			cloneTime(src.ActualDeliveryTime()),
		)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              o.ID(),
		BuyerID:         o.BuyerID(),
		SellerID:        o.SellerID(),
		ProductID:       o.ProductID(),
		Terms:           o.Terms(),
		Status:          o.Status(),
		PaymentStatus:   o.PaymentStatus(),
		Logistics:       l,
		PickupAddress:   o.PickupAddress(),
		DeliveryAddress: o.DeliveryAddress(),
		Notes:           o.Notes(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
	})
}

func cloneProvider(p *logistics.Provider) (*logistics.Provider, error) {
	fleet := make([]*logistics.Vehicle, 0, len(p.Vehicles()))
	for _, v := range p.Vehicles() {
		vehicle, err := logistics.RestoreVehicle(
			v.Number(),
			v.Class(),
			v.CapacityTons(),
			v.Driver(),
			v.IsAvailable(),
			clonePoint(v.Location()),
		)
		if err != nil {
			return nil, err
		}
		fleet = append(fleet, vehicle)
	}
	return logistics.RestoreProvider(p.ID(), p.Name(), p.Phone(), p.IsVerified(), fleet)
}

func clonePoint(p *kernel.GeoPoint) *kernel.GeoPoint {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
