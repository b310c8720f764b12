package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loke-social/loke-server/internal/realtime"
)

func newTestHub() *Hub {
	registry := realtime.NewRegistry()
	return NewHub(registry, realtime.NewLocalBackend(registry))
}

func drain(c *Client) [][]byte {
	var frames [][]byte
	for {
		select {
		case frame, ok := <-c.Send:
			if !ok {
				return frames
			}
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestSendToUserReachesAllConnections(t *testing.T) {
	hub := newTestHub()

	c1 := NewClient(hub, nil, "bob")
	c2 := NewClient(hub, nil, "bob")
	c3 := NewClient(hub, nil, "bob")
	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	hub.SendToUser("bob", "ReceiveMessage", map[string]string{"content": "hi"})

	assert.Len(t, drain(c1), 1)
	assert.Len(t, drain(c2), 1)
	assert.Len(t, drain(c3), 1)
}

func TestSendToUserSkipsRemovedConnection(t *testing.T) {
	hub := newTestHub()

	c1 := NewClient(hub, nil, "bob")
	c2 := NewClient(hub, nil, "bob")
	c3 := NewClient(hub, nil, "bob")
	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)
	hub.Unregister(c2)

	hub.SendToUser("bob", "ReceiveMessage", map[string]string{"content": "hi"})

	assert.Len(t, drain(c1), 1)
	assert.Len(t, drain(c3), 1)
}

func TestSendToUserDoesNotCrossUsers(t *testing.T) {
	hub := newTestHub()

	bob := NewClient(hub, nil, "bob")
	carol := NewClient(hub, nil, "carol")
	hub.Register(bob)
	hub.Register(carol)

	hub.SendToUser("bob", "ReceiveMessage", "x")

	assert.Len(t, drain(bob), 1)
	assert.Empty(t, drain(carol))
}

func TestAnonymousClientInvisibleToDelivery(t *testing.T) {
	hub := newTestHub()

	anon := NewClient(hub, nil, "")
	hub.Register(anon)

	hub.SendToUser("", "ReceiveMessage", "x")

	assert.Empty(t, drain(anon))
	assert.Empty(t, hub.registry.OnlineUsers())
}

func TestUnregisterTwiceIsNoop(t *testing.T) {
	hub := newTestHub()

	c := NewClient(hub, nil, "bob")
	hub.Register(c)

	hub.Unregister(c)
	assert.NotPanics(t, func() { hub.Unregister(c) })
	assert.Empty(t, hub.registry.ConnectionsFor("bob"))
}

func TestEnvelopeShape(t *testing.T) {
	hub := newTestHub()

	c := NewClient(hub, nil, "bob")
	hub.Register(c)

	hub.SendToUser("bob", "ReceiveMessage", map[string]string{"content": "hi"})

	frames := drain(c)
	require.Len(t, frames, 1)

	var env Envelope
	require.NoError(t, json.Unmarshal(frames[0], &env))
	assert.Equal(t, "ReceiveMessage", env.Event)
	assert.False(t, env.Timestamp.IsZero())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "hi", payload["content"])
}

func TestStopClearsRegistryAndPresence(t *testing.T) {
	hub := newTestHub()

	c1 := NewClient(hub, nil, "bob")
	c2 := NewClient(hub, nil, "bob")
	anon := NewClient(hub, nil, "")
	hub.Register(c1)
	hub.Register(c2)
	hub.Register(anon)

	hub.Stop()

	assert.Empty(t, hub.registry.ConnectionsFor("bob"))
	assert.Empty(t, hub.registry.OnlineUsers())

	conns, err := hub.presence.Connections(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, conns, "shared backend must not keep this node's connections")
}

func TestUnregisterAfterStopIsNoop(t *testing.T) {
	hub := newTestHub()

	c := NewClient(hub, nil, "bob")
	hub.Register(c)

	hub.Stop()
	assert.NotPanics(t, func() { hub.Unregister(c) })
	assert.Empty(t, hub.registry.ConnectionsFor("bob"))
}

func TestDeliverLocalPushesToLocalConnections(t *testing.T) {
	hub := newTestHub()

	c := NewClient(hub, nil, "bob")
	hub.Register(c)

	hub.DeliverLocal("bob", "ReceiveMessage", json.RawMessage(`{"content":"relayed"}`))

	frames := drain(c)
	require.Len(t, frames, 1)

	var env Envelope
	require.NoError(t, json.Unmarshal(frames[0], &env))
	assert.Equal(t, "ReceiveMessage", env.Event)
}
