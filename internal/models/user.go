package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string
	Bio          string
	Hometown     string
	Education    string
	Job          string
	Company      string
	Status       string
	Interests    string
	AvatarURL    string
	LastSeenAt   time.Time
	CreatedAt    time.Time
}
