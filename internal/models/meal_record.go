package models

import (
	"time"
)

// MealRecord is one person's meal decision for one calendar day. The name and
// meal profile fields are a snapshot taken at confirmation time, not a live
// join against the roster. A unique index on (person_id, date) backs the
// one-record-per-person-per-day guarantee.
type MealRecord struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	PersonID      string     `gorm:"size:64;not null;uniqueIndex:idx_meal_records_person_day" json:"person_id"`
	PersonType    string     `gorm:"size:16;not null" json:"person_type"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	FirstName     string     `gorm:"size:255;not null" json:"first_name"`
	MealConfirmed bool       `gorm:"not null" json:"meal_confirmed"`
	Date          string     `gorm:"size:10;not null;uniqueIndex:idx_meal_records_person_day;index" json:"date"`
	Allergies     StringList `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	MealTexture   string     `gorm:"size:50" json:"meal_texture"`
	MealType      string     `gorm:"size:50" json:"meal_type"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (MealRecord) TableName() string {
	return "meal_records"
}
