package database

import (
	"time"

	"github.com/loke-social/loke-server/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) DeleteUser(username string) error {
	return d.db.Delete(&models.User{}, "username = ?", username).Error
}

func (d *Database) UpdateLastSeen(username string) error {
	return d.db.Model(&models.User{}).Where("username = ?", username).Update("last_seen_at", time.Now()).Error
}
