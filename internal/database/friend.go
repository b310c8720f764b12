package database

import (
	"github.com/loke-social/loke-server/internal/models"
)

func (d *Database) CreateFriend(friend *models.Friend) error {
	return d.db.Create(friend).Error
}

func (d *Database) GetFriend(id string) (*models.Friend, error) {
	var friend models.Friend
	if err := d.db.First(&friend, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &friend, nil
}

func (d *Database) UpdateFriend(friend *models.Friend) error {
	return d.db.Save(friend).Error
}

func (d *Database) DeleteFriend(id string) error {
	return d.db.Delete(&models.Friend{}, "id = ?", id).Error
}

// GetFriendLink finds the link between two users in either direction.
func (d *Database) GetFriendLink(userA, userB string) (*models.Friend, error) {
	var friend models.Friend
	err := d.db.
		Where("(user_id = ? AND friend_user_id = ?) OR (user_id = ? AND friend_user_id = ?)",
			userA, userB, userB, userA).
		First(&friend).Error
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

// ListFriends returns the user's accepted links, either direction.
func (d *Database) ListFriends(username string) ([]models.Friend, error) {
	var friends []models.Friend
	err := d.db.
		Where("(user_id = ? OR friend_user_id = ?) AND status = ?",
			username, username, models.FriendAccepted).
		Find(&friends).Error
	return friends, err
}

// ListPendingRequests returns incoming requests awaiting the user's answer.
func (d *Database) ListPendingRequests(username string) ([]models.Friend, error) {
	var friends []models.Friend
	err := d.db.
		Where("friend_user_id = ? AND status = ?", username, models.FriendPending).
		Find(&friends).Error
	return friends, err
}

// AreFriends reports whether two users share an accepted link.
func (d *Database) AreFriends(userA, userB string) (bool, error) {
	var count int64
	err := d.db.Model(&models.Friend{}).
		Where("((user_id = ? AND friend_user_id = ?) OR (user_id = ? AND friend_user_id = ?)) AND status = ?",
			userA, userB, userB, userA, models.FriendAccepted).
		Count(&count).Error
	return count > 0, err
}
