package dto

import "github.com/google/uuid"

type CreatePostRequest struct {
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	Visibility string `json:"visibility,omitempty"` // everyone, friends, owner
}

type CommentRequest struct {
	PostID  uuid.UUID `json:"post_id" binding:"required"`
	Content string    `json:"content" binding:"required"`
}

type LikeRequest struct {
	PostID uuid.UUID `json:"post_id" binding:"required"`
}
