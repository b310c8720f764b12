package database

import (
	"gorm.io/gorm"

	"github.com/loke-social/loke-server/internal/models"
)

func (d *Database) CreatePost(post *models.Post) error {
	return d.db.Create(post).Error
}

func (d *Database) GetPost(id string) (*models.Post, error) {
	var post models.Post
	if err := d.db.Preload("Comments").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (d *Database) DeletePost(id string) error {
	return d.db.Delete(&models.Post{}, "id = ?", id).Error
}

// GetUserPosts returns a page of the user's posts at the given visibility
// levels, newest first. Each post is filtered by its own visibility.
func (d *Database) GetUserPosts(username string, visibilities []string, page, limit int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}

	var posts []models.Post
	err := d.db.
		Where("user_id = ? AND visibility IN ?", username, visibilities).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Comments").
		Find(&posts).Error
	return posts, err
}

// GetFeedPosts returns a page of the requester's own posts plus the posts
// their friends shared at friend-or-wider visibility, newest first.
func (d *Database) GetFeedPosts(username string, friends []string, page, limit int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}

	q := d.db.Where("user_id = ?", username)
	if len(friends) > 0 {
		q = d.db.Where("user_id = ? OR (user_id IN ? AND visibility IN ?)",
			username, friends, []string{models.VisibilityEveryone, models.VisibilityFriendOnly})
	}

	var posts []models.Post
	err := q.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Comments").
		Find(&posts).Error
	return posts, err
}

func (d *Database) AddComment(comment *models.Comment) error {
	return d.db.Create(comment).Error
}

// LikePost increments the public or anonymous like counter.
func (d *Database) LikePost(id string, secret bool) (*models.Post, error) {
	column := "likes"
	if secret {
		column = "secret_likes"
	}

	err := d.db.Model(&models.Post{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1")).Error
	if err != nil {
		return nil, err
	}
	return d.GetPost(id)
}
