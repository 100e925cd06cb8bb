package main

import (
	"log"

	"github.com/google/uuid"

	"github.com/Thibault-Renand/OctoPulse/config"
	"github.com/Thibault-Renand/OctoPulse/internal/database"
	"github.com/Thibault-Renand/OctoPulse/internal/models"
)

// Seeds a demo roster for local development.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	residents := []models.Resident{
		{Name: "Martin", FirstName: "Paul", MealTexture: models.TextureNormal, MealType: models.MealTypeNone, Allergies: models.StringList{}},
		{Name: "Durand", FirstName: "Anne", MealTexture: models.TextureChopped, MealType: "vegetarian", Allergies: models.StringList{"gluten"}},
		{Name: "Bernard", FirstName: "Louise", MealTexture: models.TexturePureed, MealType: "high-calorie", Allergies: models.StringList{}},
		{Name: "Moreau", FirstName: "Jean", MealTexture: models.TextureNormal, MealType: models.MealTypeNone, Allergies: models.StringList{"lactose", "egg"}},
	}
	for i := range residents {
		residents[i].ID = "resident-" + uuid.NewString()
	}

	staff := []models.Staff{
		{Name: "Petit", FirstName: "Lucie", Role: models.RoleCaregiver},
		{Name: "Roux", FirstName: "Marc", Role: models.RoleStaff},
	}
	for i := range staff {
		staff[i].ID = "staff-" + uuid.NewString()
	}

	if err := db.Create(&residents).Error; err != nil {
		log.Fatalf("Failed to seed residents: %v", err)
	}
	if err := db.Create(&staff).Error; err != nil {
		log.Fatalf("Failed to seed staff: %v", err)
	}

	log.Printf("Seeded %d residents and %d staff members", len(residents), len(staff))
}
