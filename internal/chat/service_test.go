package chat_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loke-social/loke-server/internal/chat"
	"github.com/loke-social/loke-server/internal/models"
	"github.com/loke-social/loke-server/internal/realtime"
	ws "github.com/loke-social/loke-server/internal/websocket"
)

type fixture struct {
	store   *chat.MemoryStore
	hub     *ws.Hub
	service *chat.Service
}

func newFixture() *fixture {
	registry := realtime.NewRegistry()
	presence := realtime.NewLocalBackend(registry)
	hub := ws.NewHub(registry, presence)
	store := chat.NewMemoryStore()
	return &fixture{
		store:   store,
		hub:     hub,
		service: chat.NewService(store, hub, presence),
	}
}

func receiveOne(t *testing.T, c *ws.Client) ws.Envelope {
	t.Helper()
	select {
	case frame := <-c.Send:
		var env ws.Envelope
		require.NoError(t, json.Unmarshal(frame, &env))
		return env
	default:
		t.Fatal("expected a pushed frame")
		return ws.Envelope{}
	}
}

func TestCreateConversationLookupOrCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	conv, err := f.service.CreateConversation(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", conv.UserAID)
	assert.Equal(t, "bob", conv.UserBID)

	// Repeated creation, from either side, resolves to the same conversation.
	again, err := f.service.CreateConversation(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)

	reversed, err := f.service.CreateConversation(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, conv.ID, reversed.ID)
}

func TestCreateConversationValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.CreateConversation(ctx, "", "bob")
	assert.ErrorIs(t, err, chat.ErrUnauthenticated)

	_, err = f.service.CreateConversation(ctx, "alice", "")
	assert.ErrorIs(t, err, chat.ErrInvalidRecipient)

	_, err = f.service.CreateConversation(ctx, "alice", "alice")
	assert.ErrorIs(t, err, chat.ErrInvalidRecipient)
}

// The end-to-end scenario: alice sends "hi"; the stored message matches and
// bob's live connection receives the ReceiveMessage push.
func TestSendMessageScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	conv, err := f.service.CreateConversation(ctx, "alice", "bob")
	require.NoError(t, err)

	bobConn := ws.NewClient(f.hub, nil, "bob")
	bobConn.ID = "c1"
	f.hub.Register(bobConn)

	msg, err := f.service.SendMessage(ctx, conv.ID, "alice", "hi", "text")
	require.NoError(t, err)
	assert.Equal(t, "alice", msg.SenderID)
	assert.False(t, msg.SentAt.IsZero())

	stored, err := f.store.RecentMessages(ctx, conv.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "alice", stored[0].SenderID)
	assert.Equal(t, "hi", stored[0].Content)
	assert.Equal(t, "text", stored[0].Type)

	env := receiveOne(t, bobConn)
	assert.Equal(t, chat.EventReceiveMessage, env.Event)

	var event chat.MessageEvent
	require.NoError(t, json.Unmarshal(env.Data, &event))
	assert.Equal(t, msg.ID, event.ID)
	assert.Equal(t, "hi", event.Content)
}

func TestSendMessageOfflineRecipientStillStored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	conv, err := f.service.CreateConversation(ctx, "alice", "bob")
	require.NoError(t, err)

	// Nobody is connected; the send still succeeds and persists.
	msg, err := f.service.SendMessage(ctx, conv.ID, "alice", "hello?", "")
	require.NoError(t, err)
	assert.Equal(t, "text", msg.Type, "type defaults to text")

	stored, err := f.store.RecentMessages(ctx, conv.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "hello?", stored[0].Content)
}

func TestSendMessageRecipientIsOtherParticipant(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	conv, err := f.service.CreateConversation(ctx, "alice", "bob")
	require.NoError(t, err)

	aliceConn := ws.NewClient(f.hub, nil, "alice")
	f.hub.Register(aliceConn)

	// bob replies; alice's connection gets the push.
	_, err = f.service.SendMessage(ctx, conv.ID, "bob", "hey", "text")
	require.NoError(t, err)

	env := receiveOne(t, aliceConn)
	assert.Equal(t, chat.EventReceiveMessage, env.Event)
}

func TestSendMessageErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	conv, err := f.service.CreateConversation(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = f.service.SendMessage(ctx, conv.ID, "", "hi", "text")
	assert.ErrorIs(t, err, chat.ErrUnauthenticated)

	_, err = f.service.SendMessage(ctx, uuid.New(), "alice", "hi", "text")
	assert.ErrorIs(t, err, chat.ErrNotFound)
}

type appendFailStore struct {
	*chat.MemoryStore
}

func (s *appendFailStore) Append(context.Context, uuid.UUID, *models.Message) error {
	return assert.AnError
}

func TestSendMessagePersistFailureSurfaces(t *testing.T) {
	registry := realtime.NewRegistry()
	presence := realtime.NewLocalBackend(registry)
	hub := ws.NewHub(registry, presence)
	store := &appendFailStore{chat.NewMemoryStore()}
	service := chat.NewService(store, hub, presence)
	ctx := context.Background()

	conv, err := service.CreateConversation(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = service.SendMessage(ctx, conv.ID, "alice", "hi", "text")
	assert.ErrorIs(t, err, chat.ErrPersistFailed)
}

func TestListConversationsPreviews(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	conv, err := f.service.CreateConversation(ctx, "alice", "bob")
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		_, err := f.service.SendMessage(ctx, conv.ID, "alice", "m", "text")
		require.NoError(t, err)
	}

	convs, previews, err := f.service.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Len(t, previews[conv.ID], chat.PreviewWindow)

	convs, _, err = f.service.ListConversations(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestListOnlineUsers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bobConn := ws.NewClient(f.hub, nil, "bob")
	f.hub.Register(bobConn)

	users, err := f.service.ListOnlineUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, users)

	f.hub.Unregister(bobConn)
	users, err = f.service.ListOnlineUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
