// Package notifications fans committed order changes out to the channels of
// every stakeholder.
package notifications

import (
	"context"
	"encoding/json"
	"log/slog"

	"ricetrade/internal/core/application/views"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/ports"
)

// Observer is told about every delivery attempt.
type Observer interface {
	ObserveDelivery(publisher string, err error)
}

// NamedPublisher labels a transport for logs and metrics.
type NamedPublisher struct {
	Name string
	ports.Publisher
}

type orderEnvelope struct {
	Order views.Order `json:"order"`
}

// Fanout implements ports.Notifier. Each recipient gets the order projected
// for its own role. Delivery is best effort: failures are logged and counted,
// never returned.
type Fanout struct {
	publishers []NamedPublisher
	observer   Observer
	logger     *slog.Logger
}

func NewFanout(logger *slog.Logger, observer Observer, publishers ...NamedPublisher) *Fanout {
	return &Fanout{
		publishers: publishers,
		observer:   observer,
		logger:     logger.With("component", "notification_fanout"),
	}
}

func (f *Fanout) Notify(ctx context.Context, event ports.OrderEvent) {
	if event.Order == nil {
		return
	}

	seen := make(map[identity.ChannelKey]struct{}, len(event.Recipients))
	for _, role := range event.Recipients {
		id, ok := f.recipient(event, role)
		if !ok {
			continue
		}
		channel := identity.NewChannelKey(role, id)
		if _, dup := seen[channel]; dup {
			continue
		}
		seen[channel] = struct{}{}

		payload := event.Payload
		if payload == nil {
			payload = orderEnvelope{Order: views.NewOrder(event.Order, role, views.Summaries{})}
		}
		data, err := json.Marshal(payload)
		if err != nil {
			f.logger.ErrorContext(ctx, "Failed to encode notification", "event", event.Name, "error", err)
			continue
		}

		f.publish(ctx, ports.Message{Channel: channel, Event: event.Name, Data: data})
	}
}

func (f *Fanout) publish(ctx context.Context, msg ports.Message) {
	for _, p := range f.publishers {
		err := p.Publish(ctx, msg)
		if f.observer != nil {
			f.observer.ObserveDelivery(p.Name, err)
		}
		if err != nil {
			f.logger.WarnContext(ctx, "Notification not delivered",
				"publisher", p.Name, "channel", msg.Channel.String(), "event", msg.Event, "error", err)
		}
	}
}

func (f *Fanout) recipient(event ports.OrderEvent, role identity.Role) (kernel.UUID, bool) {
	switch role {
	case identity.RoleBuyer:
		return event.Order.BuyerID(), true
	case identity.RoleSeller:
		return event.Order.SellerID(), true
	case identity.RoleLogistics:
		if id := event.Order.ProviderID(); id != nil {
			return *id, true
		}
		if event.FormerProvider != nil {
			return *event.FormerProvider, true
		}
	case identity.RoleUnknown:
	}
	return kernel.UUID{}, false
}
