// Package realtime delivers notifications to connected clients. Each client
// subscribes to its own channel and receives the messages published to it
// while it stays connected; nothing is stored for absent clients.
package realtime

import (
	"context"
	"errors"
	"sync"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/ports"
)

// ErrSubscriberLagging reports a message dropped for a subscriber whose
// buffer was full.
var ErrSubscriberLagging = errors.New("realtime: subscriber is lagging, message dropped")

const defaultBuffer = 16

type subscriber struct {
	ch chan ports.Message
}

// Hub implements ports.Publisher. Publish never waits on a subscriber.
type Hub struct {
	mu     sync.RWMutex
	subs   map[identity.ChannelKey]map[*subscriber]struct{}
	buffer int
	closed bool
}

func NewHub() *Hub {
	return NewHubWithBuffer(defaultBuffer)
}

func NewHubWithBuffer(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[identity.ChannelKey]map[*subscriber]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a receiver on the channel. The returned cancel func
// unregisters it and closes the receive channel; it is safe to call twice.
// After Close the receive channel is returned already closed.
func (h *Hub) Subscribe(channel identity.ChannelKey) (<-chan ports.Message, func()) {
	s := &subscriber{ch: make(chan ports.Message, h.buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(s.ch)
		return s.ch, func() {}
	}
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[*subscriber]struct{})
	}
	h.subs[channel][s] = struct{}{}

	return s.ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[channel][s]; !ok {
			return
		}
		delete(h.subs[channel], s)
		if len(h.subs[channel]) == 0 {
			delete(h.subs, channel)
		}
		close(s.ch)
	}
}

// Close ends every subscription so streaming handlers can return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for channel, subs := range h.subs {
		for s := range subs {
			close(s.ch)
		}
		delete(h.subs, channel)
	}
}

func (h *Hub) Publish(_ context.Context, msg ports.Message) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var dropped bool
	for s := range h.subs[msg.Channel] {
		select {
		case s.ch <- msg:
		default:
			dropped = true
		}
	}
	if dropped {
		return ErrSubscriberLagging
	}
	return nil
}

// Subscribers returns how many receivers listen on the channel.
func (h *Hub) Subscribers(channel identity.ChannelKey) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}
