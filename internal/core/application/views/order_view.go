// Package views projects order aggregates into the JSON documents returned
// by the API and carried by notifications. It is the only place where the
// seller is anonymised and handoff codes are redacted.
package views

import (
	"time"

	"ricetrade/internal/core/domain/model/directory"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type Address struct {
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Pincode     string `json:"pincode,omitempty"`
	Coordinates Point  `json:"coordinates"`
}

type Party struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	City  string `json:"city,omitempty"`
}

type Product struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type Logistics struct {
	ProviderID            string     `json:"provider"`
	Provider              *Party     `json:"providerDetails,omitempty"`
	VehicleNumber         string     `json:"vehicleNumber"`
	DriverName            string     `json:"driverName"`
	DriverPhone           string     `json:"driverPhone"`
	PickupOTP             string     `json:"pickupOTP,omitempty"`
	DeliveryOTP           string     `json:"deliveryOTP,omitempty"`
	CurrentLocation       *Point     `json:"currentLocation,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	BuyerID         string          `json:"buyerId"`
	SellerID        string          `json:"sellerId"`
	ProductID       string          `json:"productId"`
	Buyer           *Party          `json:"buyer,omitempty"`
	Seller          *Party          `json:"seller,omitempty"`
	Product         *Product        `json:"product,omitempty"`
	Quantity        float64         `json:"quantity"`
	PricePerTon     decimal.Decimal `json:"pricePerTon"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Commission      decimal.Decimal `json:"commission"`
	TransportCost   decimal.Decimal `json:"transportCost"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	Logistics       *Logistics      `json:"logistics,omitempty"`
	PickupAddress   Address         `json:"pickupAddress"`
	DeliveryAddress Address         `json:"deliveryAddress"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// LocationUpdate is the minimal payload of a location event.
type LocationUpdate struct {
	OrderID  string `json:"orderId"`
	Location Point  `json:"location"`
}

// Summaries carries the directory records available for a projection. Any
// map may be nil.
type Summaries struct {
	Parties  map[kernel.UUID]directory.Party
	Products map[kernel.UUID]directory.Product
}

// NewOrder projects o for a reader holding viewer's role.
//
// Rules:
//   - a buyer sees the seller as SellerAlias(city, id), never by name
//   - the seller sees the pickup code, the buyer the delivery code, the
//     assigned provider both
func NewOrder(o *order.Order, viewer identity.Role, s Summaries) Order {
	t := o.Terms()
	v := Order{
		ID:              o.ID().String(),
		BuyerID:         o.BuyerID().String(),
		SellerID:        o.SellerID().String(),
		ProductID:       o.ProductID().String(),
		Buyer:           party(s.Parties, o.BuyerID()),
		Seller:          party(s.Parties, o.SellerID()),
		Quantity:        t.Quantity(),
		PricePerTon:     t.PricePerUnit(),
		TotalAmount:     t.TotalAmount(),
		Commission:      t.Commission(),
		TransportCost:   t.TransportCost(),
		Status:          o.Status().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		PickupAddress:   address(o.PickupAddress()),
		DeliveryAddress: address(o.DeliveryAddress()),
		Notes:           o.Notes(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	if p, ok := s.Products[o.ProductID()]; ok {
		v.Product = &Product{ID: p.ID.String(), Type: p.Type}
	}

	if viewer == identity.RoleBuyer && v.Seller != nil {
		v.Seller = &Party{
			ID:   v.Seller.ID,
			Name: services.SellerAlias(v.Seller.City, o.SellerID()),
			City: v.Seller.City,
		}
	}

	if l := o.Logistics(); l != nil {
		v.Logistics = logistics(l, viewer, s)
	}

	return v
}

// NewOrders projects a list, keeping its order.
func NewOrders(orders []*order.Order, viewer identity.Role, s Summaries) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrder(o, viewer, s))
	}
	return out
}

func NewLocationUpdate(orderID kernel.UUID, p kernel.GeoPoint) LocationUpdate {
	return LocationUpdate{OrderID: orderID.String(), Location: point(p)}
}

func logistics(l *order.Logistics, viewer identity.Role, s Summaries) *Logistics {
	v := &Logistics{
		ProviderID:            l.ProviderID().String(),
		Provider:              party(s.Parties, l.ProviderID()),
		VehicleNumber:         l.VehicleNumber(),
		DriverName:            l.DriverName(),
		DriverPhone:           l.DriverPhone(),
		EstimatedDeliveryTime: l.EstimatedDeliveryTime(),
		ActualDeliveryTime:    l.ActualDeliveryTime(),
	}
	if loc := l.CurrentLocation(); loc != nil {
		p := point(*loc)
		v.CurrentLocation = &p
	}

	switch viewer { //nolint:exhaustive // unknown viewers see no codes
	case identity.RoleSeller:
		v.PickupOTP = l.PickupOTP()
	case identity.RoleBuyer:
		v.DeliveryOTP = l.DeliveryOTP()
	case identity.RoleLogistics:
		v.PickupOTP = l.PickupOTP()
		v.DeliveryOTP = l.DeliveryOTP()
	}
	return v
}

func party(parties map[kernel.UUID]directory.Party, id kernel.UUID) *Party {
	p, ok := parties[id]
	if !ok {
		return nil
	}
	return &Party{ID: p.ID.String(), Name: p.Name, Phone: p.Phone, City: p.City}
}

func address(a order.Address) Address {
	return Address{
		Street:      a.Street(),
		City:        a.City(),
		State:       a.State(),
		Pincode:     a.Pincode(),
		Coordinates: point(a.Coordinates()),
	}
}

func point(p kernel.GeoPoint) Point {
	return Point{Type: "Point", Coordinates: p.LngLat()}
}
