package realtime_test

import (
	"testing"

	"ricetrade/internal/adapters/out/realtime"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Publish(t *testing.T) {
	buyer := identity.NewChannelKey(identity.RoleBuyer, kernel.NewUUID())
	seller := identity.NewChannelKey(identity.RoleSeller, kernel.NewUUID())

	t.Run("delivers_to_every_subscriber_of_the_channel", func(t *testing.T) {
		hub := realtime.NewHub()
		first, cancelFirst := hub.Subscribe(buyer)
		defer cancelFirst()
		second, cancelSecond := hub.Subscribe(buyer)
		defer cancelSecond()
		other, cancelOther := hub.Subscribe(seller)
		defer cancelOther()

		msg := ports.Message{Channel: buyer, Event: "orderInTransit", Data: []byte(`{}`)}
		require.NoError(t, hub.Publish(t.Context(), msg))

		assert.Equal(t, msg, <-first)
		assert.Equal(t, msg, <-second)
		assert.Empty(t, other)
	})

	t.Run("without_subscribers_is_a_no_op", func(t *testing.T) {
		hub := realtime.NewHub()
		require.NoError(t, hub.Publish(t.Context(), ports.Message{Channel: buyer}))
	})

	t.Run("drops_for_a_full_subscriber", func(t *testing.T) {
		hub := realtime.NewHubWithBuffer(1)
		ch, cancel := hub.Subscribe(buyer)
		defer cancel()

		require.NoError(t, hub.Publish(t.Context(), ports.Message{Channel: buyer, Event: "a"}))
		err := hub.Publish(t.Context(), ports.Message{Channel: buyer, Event: "b"})

		require.ErrorIs(t, err, realtime.ErrSubscriberLagging)
		assert.Equal(t, "a", (<-ch).Event)
	})
}

func TestHub_Cancel(t *testing.T) {
	hub := realtime.NewHub()
	channel := identity.NewChannelKey(identity.RoleLogistics, kernel.NewUUID())

	ch, cancel := hub.Subscribe(channel)
	assert.Equal(t, 1, hub.Subscribers(channel))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers(channel))
	require.NoError(t, hub.Publish(t.Context(), ports.Message{Channel: channel}))
}

func TestHub_Close(t *testing.T) {
	hub := realtime.NewHub()
	channel := identity.NewChannelKey(identity.RoleSeller, kernel.NewUUID())
	ch, cancel := hub.Subscribe(channel)

	hub.Close()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	late, _ := hub.Subscribe(channel)
	_, open = <-late
	assert.False(t, open)
}
