package dto

import "github.com/google/uuid"

type FriendRequest struct {
	FriendUserID string `json:"friend_user_id" binding:"required"`
}

type IDOnlyRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

type FriendResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	FriendUserID string    `json:"friend_user_id"`
	Status       string    `json:"status"`
	Name         string    `json:"name,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
}
