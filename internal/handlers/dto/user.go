package dto

import (
	"time"

	"github.com/loke-social/loke-server/internal/models"
)

// PublicProfile is the user view exposed to other users. It carries no
// email and no credential material.
type PublicProfile struct {
	Username   string    `json:"username"`
	Name       string    `json:"name,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Hometown   string    `json:"hometown,omitempty"`
	Education  string    `json:"education,omitempty"`
	Job        string    `json:"job,omitempty"`
	Company    string    `json:"company,omitempty"`
	Status     string    `json:"status,omitempty"`
	Interests  string    `json:"interests,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

func ToPublicProfile(u *models.User) PublicProfile {
	return PublicProfile{
		Username:   u.Username,
		Name:       u.Name,
		Bio:        u.Bio,
		Hometown:   u.Hometown,
		Education:  u.Education,
		Job:        u.Job,
		Company:    u.Company,
		Status:     u.Status,
		Interests:  u.Interests,
		AvatarURL:  u.AvatarURL,
		LastSeenAt: u.LastSeenAt,
	}
}
