// Package orderrepo persists order aggregates with GORM. The logistics
// record is flattened into nullable columns of the orders row so an order
// is always read and written as one row.
package orderrepo

import (
	"time"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`

	Quantity      float64         `gorm:"not null"`
	PricePerTon   decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Commission    decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	TransportCost decimal.Decimal `gorm:"type:numeric(18,4);not null"`

	Status        string `gorm:"type:varchar(20);not null;index"`
	PaymentStatus string `gorm:"type:varchar(20);not null"`

	Logistics       LogisticsDTO `gorm:"embedded;embeddedPrefix:logistics_"`
	PickupAddress   AddressDTO   `gorm:"embedded;embeddedPrefix:pickup_"`
	DeliveryAddress AddressDTO   `gorm:"embedded;embeddedPrefix:delivery_"`
	Notes           string       `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
	Version   int64     `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO stores coordinates as a [lng, lat] array column.
type AddressDTO struct {
	Street      string          `gorm:"type:varchar(255)"`
	City        string          `gorm:"type:varchar(100)"`
	State       string          `gorm:"type:varchar(100)"`
	Pincode     string          `gorm:"type:varchar(20)"`
	Coordinates pq.Float64Array `gorm:"type:double precision[];not null"`
}

// LogisticsDTO is present when ProviderID is not null.
type LogisticsDTO struct {
	ProviderID            *uuid.UUID      `gorm:"type:uuid;index"`
	VehicleNumber         string          `gorm:"type:varchar(50)"`
	DriverName            string          `gorm:"type:varchar(255)"`
	DriverPhone           string          `gorm:"type:varchar(50)"`
	PickupOTP             string          `gorm:"type:char(6)"`
	DeliveryOTP           string          `gorm:"type:char(6)"`
	CurrentLocation       pq.Float64Array `gorm:"type:double precision[]"`
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	t := o.Terms()
	return OrderDTO{
		ID:              o.ID().Google(),
		BuyerID:         o.BuyerID().Google(),
		SellerID:        o.SellerID().Google(),
		ProductID:       o.ProductID().Google(),
		Quantity:        t.Quantity(),
		PricePerTon:     t.PricePerUnit(),
		TotalAmount:     t.TotalAmount(),
		Commission:      t.Commission(),
		TransportCost:   t.TransportCost(),
		Status:          o.Status().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		Logistics:       logisticsFromDomain(o.Logistics()),
		PickupAddress:   addressFromDomain(o.PickupAddress()),
		DeliveryAddress: addressFromDomain(o.DeliveryAddress()),
		Notes:           o.Notes(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
	}
}

func addressFromDomain(a order.Address) AddressDTO {
	return AddressDTO{
		Street:      a.Street(),
		City:        a.City(),
		State:       a.State(),
		Pincode:     a.Pincode(),
		Coordinates: a.Coordinates().LngLat(),
	}
}

func logisticsFromDomain(l *order.Logistics) LogisticsDTO {
	if l == nil {
		return LogisticsDTO{}
	}
	providerID := l.ProviderID().Google()
	dto := LogisticsDTO{
		ProviderID:            &providerID,
		VehicleNumber:         l.VehicleNumber(),
		DriverName:            l.DriverName(),
		DriverPhone:           l.DriverPhone(),
		PickupOTP:             l.PickupOTP(),
		DeliveryOTP:           l.DeliveryOTP(),
		EstimatedDeliveryTime: l.EstimatedDeliveryTime(),
		ActualDeliveryTime:    l.ActualDeliveryTime(),
	}
	if loc := l.CurrentLocation(); loc != nil {
		dto.CurrentLocation = loc.LngLat()
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := uuids(dto.ID, dto.BuyerID, dto.SellerID, dto.ProductID)
	if err != nil {
		return nil, err
	}

	terms, err := order.NewTerms(dto.Quantity, dto.PricePerTon, dto.TotalAmount, dto.Commission, dto.TransportCost)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	pickup, err := addressToDomain(dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	delivery, err := addressToDomain(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	l, err := logisticsToDomain(dto.Logistics)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              ids[0],
		BuyerID:         ids[1],
		SellerID:        ids[2],
		ProductID:       ids[3],
		Terms:           terms,
		Status:          status,
		PaymentStatus:   paymentStatus,
		Logistics:       l,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		Notes:           dto.Notes,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		Version:         dto.Version,
	})
}

func addressToDomain(dto AddressDTO) (order.Address, error) {
	point, err := kernel.GeoPointFromLngLat(dto.Coordinates)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(dto.Street, dto.City, dto.State, dto.Pincode, point)
}

func logisticsToDomain(dto LogisticsDTO) (*order.Logistics, error) {
	if dto.ProviderID == nil {
		return nil, nil //nolint:nilnil // no logistics before assignment
	}

	providerID, err := kernel.UUIDFromGoogle(*dto.ProviderID)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if len(dto.CurrentLocation) > 0 {
		point, pointErr := kernel.GeoPointFromLngLat(dto.CurrentLocation)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return order.RestoreLogistics(
		providerID,
		dto.VehicleNumber, dto.DriverName, dto.DriverPhone, dto.PickupOTP, dto.DeliveryOTP,
		location,
		utc(dto.EstimatedDeliveryTime), utc(dto.ActualDeliveryTime),
	)
}

func uuids(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromGoogle(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
