package models

import (
	"time"

	"github.com/google/uuid"
)

// Friend link statuses.
const (
	FriendPending  = "pending"
	FriendAccepted = "accepted"
)

// Friend is a directed friendship link: UserID sent the request to
// FriendUserID. Both directions count once accepted.
type Friend struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       string    `gorm:"index;not null"`
	FriendUserID string    `gorm:"index;not null"`
	Status       string    `gorm:"not null;check:status IN ('pending','accepted')"`
	CreatedAt    time.Time
}
