// Package model defines the persistence models.
package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Folder":
		return db.AutoMigrate(Folder{})

	case "File":
		return db.AutoMigrate(File{})
	}
	return nil
}
