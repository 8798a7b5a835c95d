package ports

import (
	"context"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
)

// Event names delivered to stakeholder channels.
const (
	EventOrderStatusUpdated = "orderStatusUpdated"
	EventNewOrderAssigned   = "newOrderAssigned"
	EventLogisticsAssigned  = "logisticsAssigned"
	EventOrderInTransit     = "orderInTransit"
	EventOrderDelivered     = "orderDelivered"
	EventLocationUpdated    = "locationUpdated"
)

// OrderEvent is a committed change to announce. Recipients name the
// stakeholder roles of Order that receive it; a logistics recipient is
// skipped while the order has no provider. FormerProvider addresses the
// provider of a cancelled order whose logistics was detached. Payload
// replaces the order view when set.
type OrderEvent struct {
	Name           string
	Order          *order.Order
	Recipients     []identity.Role
	FormerProvider *kernel.UUID
	Payload        any
}

// Notifier announces committed changes. It never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, event OrderEvent)
}

// Message is one event addressed to one channel, already encoded as JSON.
type Message struct {
	Channel identity.ChannelKey
	Event   string
	Data    []byte
}

// Publisher delivers messages to a transport. Implementations must not block
// on slow or absent subscribers.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
