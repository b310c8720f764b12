package database

import "gorm.io/gorm"

// Database wraps the gorm handle behind the persistence API the handlers
// consume. Connect initializes it; the zero value is not usable until then.
type Database struct {
	db *gorm.DB
}
