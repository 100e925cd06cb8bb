package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Thibault-Renand/OctoPulse/internal/models"
)

// RunMigrations brings the schema up to date. GORM auto-migration covers both
// drivers; the unique index on meal_records (person_id, date) comes from the
// model tags.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Resident{},
		&models.Staff{},
		&models.MealRecord{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
