package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/loke-social/loke-server/internal/models"
)

type CreateConversationRequest struct {
	OtherID string `json:"other_id" binding:"required"`
}

type SendMessageRequest struct {
	ConversationID uuid.UUID `json:"conversation_id" binding:"required"`
	Content        string    `json:"content" binding:"required"`
	Type           string    `json:"type,omitempty"` // text, image, file
}

type MessageContent struct {
	ID       uuid.UUID `json:"id"`
	SenderID string    `json:"sender_id"`
	Content  string    `json:"content"`
	Type     string    `json:"type"`
	SentAt   time.Time `json:"sent_at"`
}

type ConversationResponse struct {
	ID       uuid.UUID        `json:"id"`
	UserA    string           `json:"user_a"`
	UserB    string           `json:"user_b"`
	Messages []MessageContent `json:"messages"`
}

func ToMessageContent(m models.Message) MessageContent {
	return MessageContent{
		ID:       m.ID,
		SenderID: m.SenderID,
		Content:  m.Content,
		Type:     m.Type,
		SentAt:   m.SentAt,
	}
}

func ToMessageContents(msgs []models.Message) []MessageContent {
	out := make([]MessageContent, len(msgs))
	for i, m := range msgs {
		out[i] = ToMessageContent(m)
	}
	return out
}

func ToConversationResponse(c *models.Conversation, msgs []models.Message) ConversationResponse {
	return ConversationResponse{
		ID:       c.ID,
		UserA:    c.UserAID,
		UserB:    c.UserBID,
		Messages: ToMessageContents(msgs),
	}
}
