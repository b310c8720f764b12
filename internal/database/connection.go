package database

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/loke-social/loke-server/internal/models"
)

func (d *Database) Connect(dsn string) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Friend{},
		&models.Post{},
		&models.Comment{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
