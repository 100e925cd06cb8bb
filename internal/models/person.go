package models

import (
	"time"

	"gorm.io/gorm"
)

// Person type discriminator used on meal records.
const (
	PersonTypeResident = "resident"
	PersonTypeStaff    = "staff"
)

// Meal textures, ordered coarser to finer.
const (
	TextureNormal  = "normal"
	TextureChopped = "chopped"
	TexturePureed  = "puréed"
)

// TextureLevels lists the known textures in coarser-to-finer order. Texture
// stepping walks this slice; unknown textures are left untouched.
var TextureLevels = []string{TextureNormal, TextureChopped, TexturePureed}

// MealTypeNone is the sentinel diet for residents without a dietary
// restriction. Any other value marks the meal as special.
const MealTypeNone = "none"

// Staff roles.
const (
	RoleCaregiver = "caregiver"
	RoleStaff     = "staff"
	RoleVisitor   = "visitor"
)

// Resident represents a facility resident and their meal profile.
type Resident struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	FirstName   string         `gorm:"size:255;not null" json:"first_name"`
	Allergies   StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	MealTexture string         `gorm:"size:50;not null;default:normal" json:"meal_texture"`
	MealType    string         `gorm:"size:50;not null;default:none" json:"meal_type"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Resident) TableName() string {
	return "residents"
}

// HasSpecialMeal reports whether the resident needs anything other than the
// standard kitchen run: a named diet or at least one allergy.
func (r *Resident) HasSpecialMeal() bool {
	return r.MealType != MealTypeNone || len(r.Allergies) > 0
}

// Staff represents a staff member who may eat on site.
type Staff struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	FirstName string         `gorm:"size:255;not null" json:"first_name"`
	Role      string         `gorm:"size:50;not null;default:staff" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Staff) TableName() string {
	return "staff_members"
}
