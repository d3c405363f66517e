package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterLimits(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	var clients []*Client
	for i := 0; i < maxConnsPerUser; i++ {
		c, err := hub.Register(1, nil)
		require.NoError(t, err)
		clients = append(clients, c)
	}

	_, err := hub.Register(1, nil)
	assert.Error(t, err, "per-user limit")
	assert.True(t, hub.IsOnline(1))

	for _, c := range clients {
		hub.UnregisterClient(c)
	}
	assert.False(t, hub.IsOnline(1))

	// Unregistering twice is harmless.
	hub.UnregisterClient(clients[0])
}

func TestHub_BroadcastReachesAllUserConnections(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	a, err := hub.Register(7, nil)
	require.NoError(t, err)
	b, err := hub.Register(7, nil)
	require.NoError(t, err)
	other, err := hub.Register(8, nil)
	require.NoError(t, err)

	hub.Broadcast(7, `{"type":"like"}`)

	assert.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 1)
	assert.Len(t, other.Send, 0)

	_ = hub.Shutdown(context.Background())
}

func TestChatHub_RoomBroadcast(t *testing.T) {
	t.Parallel()
	hub := NewChatHub()

	a, err := hub.Register(5, 1, nil)
	require.NoError(t, err)
	b, err := hub.Register(5, 2, nil)
	require.NoError(t, err)
	elsewhere, err := hub.Register(6, 3, nil)
	require.NoError(t, err)

	hub.BroadcastConversation(5, `{"type":"message"}`)
	assert.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 1)
	assert.Len(t, elsewhere.Send, 0)

	hub.UnregisterClient(a)
	hub.BroadcastConversation(5, "again")
	assert.Len(t, a.Send, 1, "unregistered client receives nothing")
	assert.Len(t, b.Send, 2)

	_ = hub.Shutdown(context.Background())
}
