package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/loke-social/loke-server/internal/models"
)

// HistoryCap bounds a conversation's stored message sequence. Appends past
// the cap evict the oldest message in the same operation, so readers never
// observe more than HistoryCap entries.
const HistoryCap = 50

// Recent-message window sizes for the two read paths.
const (
	DetailWindow  = 50
	PreviewWindow = 20
)

// ConversationStore owns conversations and their bounded message history.
// Implementations must make Append atomic per conversation: concurrent
// appends may interleave in either order but never tear, duplicate or drop
// an entry.
type ConversationStore interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	// FindByPair resolves the conversation between two users regardless of
	// which one created it. Returns ErrNotFound on a miss.
	FindByPair(ctx context.Context, userA, userB string) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	Append(ctx context.Context, conversationID uuid.UUID, msg *models.Message) error
	// RecentMessages returns the last n messages in chronological order,
	// oldest of the slice first.
	RecentMessages(ctx context.Context, conversationID uuid.UUID, n int) ([]models.Message, error)
}
