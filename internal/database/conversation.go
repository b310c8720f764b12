package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/loke-social/loke-server/internal/chat"
	"github.com/loke-social/loke-server/internal/models"
)

// ConversationStore is the gorm-backed chat.ConversationStore.
type ConversationStore struct {
	db *gorm.DB
}

func NewConversationStore(d *Database) *ConversationStore {
	return &ConversationStore{db: d.db}
}

func (s *ConversationStore) Create(ctx context.Context, conv *models.Conversation) error {
	return s.db.WithContext(ctx).Create(conv).Error
}

func (s *ConversationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.WithContext(ctx).First(&conv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *ConversationStore) FindByPair(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.WithContext(ctx).
		Where("(user_a_id = ? AND user_b_id = ?) OR (user_a_id = ? AND user_b_id = ?)",
			userA, userB, userB, userA).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *ConversationStore) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := s.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Find(&convs).Error
	return convs, err
}

// Append inserts the message and trims history over the cap in the same
// transaction, keeping the bound atomic with the mutation.
func (s *ConversationStore) Append(ctx context.Context, conversationID uuid.UUID, msg *models.Message) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Conversation{}).Where("id = ?", conversationID).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return chat.ErrNotFound
		}

		msg.ConversationID = conversationID
		if err := tx.Create(msg).Error; err != nil {
			return errors.Wrap(err, "append message")
		}

		err = tx.Model(&models.Message{}).Where("conversation_id = ?", conversationID).Count(&count).Error
		if err != nil {
			return err
		}
		if count <= chat.HistoryCap {
			return nil
		}

		oldest := tx.Model(&models.Message{}).
			Select("id").
			Where("conversation_id = ?", conversationID).
			Order("sent_at ASC").
			Limit(int(count) - chat.HistoryCap)
		return tx.Where("id IN (?)", oldest).Delete(&models.Message{}).Error
	})
}

func (s *ConversationStore) RecentMessages(ctx context.Context, conversationID uuid.UUID, n int) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC").
		Limit(n).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	// Oldest first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
