package database

import (
	"gorm.io/gorm"

	"github.com/zapshift/zapshift-server/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist. Transaction-id uniqueness on
	// payments is deliberately NOT a constraint here: the workflow guards it
	// with a lookup before insert, matching the document-store behaviour the
	// platform started with.
	return db.AutoMigrate(
		&models.Parcel{},
		&models.User{},
		&models.Rider{},
		&models.Payment{},
	)
}
