package models

import (
	"gorm.io/gorm"
)

// Database migration function
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Destination{},
	)
}

func CreateIndexes(db *gorm.DB) error {
	// Default listing filters on is_active and sorts by name
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_pod_destinations_active_name ON pod_destinations(is_active, destination_name)").Error; err != nil {
		return err
	}

	return nil
}
