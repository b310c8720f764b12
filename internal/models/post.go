package models

import (
	"time"

	"github.com/google/uuid"
)

// Post visibility levels.
const (
	VisibilityEveryone   = "everyone"
	VisibilityFriendOnly = "friends"
	VisibilityOwnerOnly  = "owner"
)

type Post struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      string    `gorm:"index;not null"`
	Content     string
	ImageURL    string
	Visibility  string `gorm:"default:'everyone';check:visibility IN ('everyone','friends','owner')"`
	Likes       int    `gorm:"default:0"`
	SecretLikes int    `gorm:"default:0"`
	CreatedAt   time.Time

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PostID    uuid.UUID `gorm:"index;not null"`
	UserID    string    `gorm:"not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time
}
