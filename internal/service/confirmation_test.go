package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Thibault-Renand/OctoPulse/internal/database"
	"github.com/Thibault-Renand/OctoPulse/internal/logger"
	"github.com/Thibault-Renand/OctoPulse/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func newConfirmationService(t *testing.T, day string) (*ConfirmationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewConfirmationService(db, FixedClock{Day: day}, nil, logger.NewNop())
	return svc, db
}

func residentRecord(personID string, confirmed bool) *models.MealRecord {
	return &models.MealRecord{
		PersonID:      personID,
		PersonType:    models.PersonTypeResident,
		Name:          "Martin",
		FirstName:     "Paul",
		MealConfirmed: confirmed,
		Allergies:     models.StringList{"gluten"},
		MealTexture:   models.TextureChopped,
		MealType:      "vegetarian",
	}
}

func TestConfirmCreatesRecordStampedToday(t *testing.T) {
	svc, db := newConfirmationService(t, "2025-03-10")
	ctx := context.Background()

	rec := residentRecord("resident-1", true)
	rec.Date = "1999-01-01" // caller-supplied day must be ignored
	require.NoError(t, svc.Confirm(ctx, rec))

	var stored []models.MealRecord
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "2025-03-10", stored[0].Date)
	assert.Equal(t, "resident-1", stored[0].PersonID)
	assert.True(t, stored[0].MealConfirmed)
	assert.Equal(t, models.StringList{"gluten"}, stored[0].Allergies)
}

func TestConfirmIsIdempotent(t *testing.T) {
	svc, db := newConfirmationService(t, "2025-03-10")
	ctx := context.Background()

	require.NoError(t, svc.Confirm(ctx, residentRecord("resident-1", true)))
	require.NoError(t, svc.Confirm(ctx, residentRecord("resident-1", true)))

	var stored []models.MealRecord
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].MealConfirmed)
}

func TestConfirmUpsertsInPlace(t *testing.T) {
	svc, db := newConfirmationService(t, "2025-03-10")
	ctx := context.Background()

	require.NoError(t, svc.Confirm(ctx, residentRecord("resident-1", true)))

	var original models.MealRecord
	require.NoError(t, db.First(&original).Error)

	// Second confirmation the same day flips the flag and refreshes the
	// resident snapshot, without creating a second row or a new identity.
	updated := residentRecord("resident-1", false)
	updated.MealTexture = models.TexturePureed
	updated.Allergies = models.StringList{"lactose"}
	require.NoError(t, svc.Confirm(ctx, updated))

	var stored []models.MealRecord
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, original.ID, stored[0].ID)
	assert.False(t, stored[0].MealConfirmed)
	assert.Equal(t, models.TexturePureed, stored[0].MealTexture)
	assert.Equal(t, models.StringList{"lactose"}, stored[0].Allergies)
	// Name snapshot keeps the original capture.
	assert.Equal(t, "Martin", stored[0].Name)
}

func TestConfirmStaffDoesNotTouchMealSnapshot(t *testing.T) {
	svc, db := newConfirmationService(t, "2025-03-10")
	ctx := context.Background()

	staff := &models.MealRecord{
		PersonID:      "staff-1",
		PersonType:    models.PersonTypeStaff,
		Name:          "Petit",
		FirstName:     "Lucie",
		MealConfirmed: true,
	}
	require.NoError(t, svc.Confirm(ctx, staff))

	again := &models.MealRecord{
		PersonID:      "staff-1",
		PersonType:    models.PersonTypeStaff,
		MealConfirmed: false,
		MealTexture:   models.TexturePureed, // must not be written for staff
	}
	require.NoError(t, svc.Confirm(ctx, again))

	var stored models.MealRecord
	require.NoError(t, db.First(&stored).Error)
	assert.False(t, stored.MealConfirmed)
	assert.Empty(t, stored.MealTexture)
}

func TestConfirmIsolation(t *testing.T) {
	svc, db := newConfirmationService(t, "2025-03-10")
	ctx := context.Background()

	require.NoError(t, svc.Confirm(ctx, residentRecord("resident-1", true)))
	require.NoError(t, svc.Confirm(ctx, residentRecord("resident-2", false)))

	var count int64
	require.NoError(t, db.Model(&models.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var other models.MealRecord
	require.NoError(t, db.First(&other, "person_id = ?", "resident-1").Error)
	assert.True(t, other.MealConfirmed)
}

func TestConfirmRejectsInvalidInput(t *testing.T) {
	svc, db := newConfirmationService(t, "2025-03-10")
	ctx := context.Background()

	err := svc.Confirm(ctx, &models.MealRecord{PersonType: models.PersonTypeResident})
	assert.ErrorIs(t, err, ErrMissingPersonID)

	err = svc.Confirm(ctx, &models.MealRecord{PersonID: "resident-1", PersonType: "visitor"})
	assert.ErrorIs(t, err, ErrUnknownPersonType)

	// Validation failures must not leave any row behind.
	var count int64
	require.NoError(t, db.Model(&models.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestTodaysRecordsScopedToCurrentDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	yesterday := NewConfirmationService(db, FixedClock{Day: "2025-03-09"}, nil, logger.NewNop())
	require.NoError(t, yesterday.Confirm(ctx, residentRecord("resident-1", true)))

	today := NewConfirmationService(db, FixedClock{Day: "2025-03-10"}, nil, logger.NewNop())
	require.NoError(t, today.Confirm(ctx, residentRecord("resident-2", false)))

	records, err := today.TodaysRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "resident-2", records[0].PersonID)

	// Day rollover: yesterday's confirmation no longer shows, and confirming
	// the same person again creates a fresh record for the new day.
	require.NoError(t, today.Confirm(ctx, residentRecord("resident-1", true)))
	records, err = today.TodaysRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	var total int64
	require.NoError(t, db.Model(&models.MealRecord{}).Count(&total).Error)
	assert.EqualValues(t, 3, total)
}
