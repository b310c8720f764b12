package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party message thread. UserAID is the creator.
// Its message history is a bounded ring: appends past the cap evict the
// oldest entry.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserAID   string    `gorm:"index;not null"`
	UserBID   string    `gorm:"index;not null"`
	CreatedAt time.Time

	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID `gorm:"index;not null"`
	SenderID       string    `gorm:"not null"`
	Content        string    `gorm:"not null"`
	Type           string    `gorm:"default:'text'"`
	SentAt         time.Time `gorm:"index"`
}
