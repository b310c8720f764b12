package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/loke-social/loke-server/internal/models"
	"github.com/loke-social/loke-server/internal/realtime"
)

// EventReceiveMessage is the push event carried to a recipient's live
// connections when a message is sent.
const EventReceiveMessage = "ReceiveMessage"

// Gateway is the send-to-user primitive the delivery path uses. A push is
// fire-and-forget: stale connections fail silently and no result is
// reported per connection.
type Gateway interface {
	SendToUser(userID, event string, payload interface{})
}

// MessageEvent is the payload pushed over the gateway and returned to the
// sender as confirmation.
type MessageEvent struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	Type           string    `json:"type"`
	SentAt         time.Time `json:"sent_at"`
}

// Service implements the messaging operations: conversation creation,
// message delivery and presence reads.
type Service struct {
	store    ConversationStore
	gateway  Gateway
	presence realtime.Backend
}

func NewService(store ConversationStore, gateway Gateway, presence realtime.Backend) *Service {
	return &Service{store: store, gateway: gateway, presence: presence}
}

// CreateConversation resolves or creates the conversation between creator
// and other. Repeated calls for the same pair return the existing one.
func (s *Service) CreateConversation(ctx context.Context, creatorID, otherID string) (*models.Conversation, error) {
	if creatorID == "" {
		return nil, ErrUnauthenticated
	}
	if otherID == "" || otherID == creatorID {
		return nil, ErrInvalidRecipient
	}

	if conv, err := s.store.FindByPair(ctx, creatorID, otherID); err == nil {
		return conv, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	conv := &models.Conversation{
		ID:        uuid.New(),
		UserAID:   creatorID,
		UserBID:   otherID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, conv); err != nil {
		return nil, errors.Wrap(err, "create conversation")
	}
	return conv, nil
}

// SendMessage persists a message and pushes it to every live connection of
// the recipient. Delivery misses are logged and swallowed; only a failed
// persist fails the operation.
func (s *Service) SendMessage(ctx context.Context, conversationID uuid.UUID, senderID, content, msgType string) (*models.Message, error) {
	if senderID == "" {
		return nil, ErrUnauthenticated
	}

	conv, err := s.store.GetByID(ctx, conversationID)
	if err != nil {
		return nil, ErrNotFound
	}

	recipient := conv.UserBID
	if conv.UserAID != senderID {
		recipient = conv.UserAID
	}
	if recipient == "" {
		return nil, ErrInvalidRecipient
	}

	if msgType == "" {
		msgType = "text"
	}

	// Send time is server-assigned; a client-supplied timestamp is never
	// trusted.
	msg := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Type:           msgType,
		SentAt:         time.Now().UTC(),
	}

	s.gateway.SendToUser(recipient, EventReceiveMessage, MessageEvent{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		Type:           msg.Type,
		SentAt:         msg.SentAt,
	})

	// Persist even when fan-out found zero live connections: an offline
	// recipient gets the message on next fetch.
	if err := s.store.Append(ctx, conversationID, msg); err != nil {
		log.WithError(err).WithField("conversation_id", conversationID).Error("message persist failed")
		return nil, errors.Wrap(ErrPersistFailed, err.Error())
	}

	return msg, nil
}

// GetConversation returns the conversation and its most recent messages.
func (s *Service) GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, []models.Message, error) {
	conv, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, ErrNotFound
	}

	msgs, err := s.store.RecentMessages(ctx, id, DetailWindow)
	if err != nil {
		return nil, nil, errors.Wrap(err, "recent messages")
	}
	return conv, msgs, nil
}

// ListConversations returns the user's conversations with short previews.
func (s *Service) ListConversations(ctx context.Context, userID string) ([]models.Conversation, map[uuid.UUID][]models.Message, error) {
	if userID == "" {
		return nil, nil, ErrUnauthenticated
	}

	convs, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "list conversations")
	}

	previews := make(map[uuid.UUID][]models.Message, len(convs))
	for _, conv := range convs {
		msgs, err := s.store.RecentMessages(ctx, conv.ID, PreviewWindow)
		if err != nil {
			log.WithError(err).WithField("conversation_id", conv.ID).Warn("preview load failed")
			continue
		}
		previews[conv.ID] = msgs
	}
	return convs, previews, nil
}

// ListOnlineUsers reports users with at least one live connection. Reads
// are eventually consistent with the distributed backend.
func (s *Service) ListOnlineUsers(ctx context.Context) ([]string, error) {
	return s.presence.OnlineUsers(ctx)
}
