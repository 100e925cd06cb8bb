package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thibault-Renand/OctoPulse/internal/logger"
	"github.com/Thibault-Renand/OctoPulse/internal/models"
	"github.com/Thibault-Renand/OctoPulse/internal/service"
	"github.com/Thibault-Renand/OctoPulse/internal/testhelpers"
)

// Exercises the upsert against a real Postgres, including the row-locking
// path that sqlite does not take.
func TestConfirmUpsertOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	svc := service.NewConfirmationService(db, service.FixedClock{Day: "2025-03-10"}, nil, logger.NewNop())
	ctx := context.Background()

	record := func(confirmed bool) *models.MealRecord {
		return &models.MealRecord{
			PersonID:      "resident-1",
			PersonType:    models.PersonTypeResident,
			Name:          "Martin",
			FirstName:     "Paul",
			MealConfirmed: confirmed,
			Allergies:     models.StringList{"gluten"},
			MealTexture:   models.TextureChopped,
			MealType:      "vegetarian",
		}
	}

	require.NoError(t, svc.Confirm(ctx, record(true)))
	require.NoError(t, svc.Confirm(ctx, record(false)))

	var stored []models.MealRecord
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].MealConfirmed)
	assert.Equal(t, models.StringList{"gluten"}, stored[0].Allergies)
}

// Concurrent confirmations for the same person on the same day must
// serialize into a single row.
func TestConcurrentConfirmsYieldOneRecord(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	svc := service.NewConfirmationService(db, service.FixedClock{Day: "2025-03-10"}, nil, logger.NewNop())
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = svc.Confirm(ctx, &models.MealRecord{
				PersonID:      "resident-1",
				PersonType:    models.PersonTypeResident,
				Name:          "Martin",
				FirstName:     "Paul",
				MealConfirmed: n%2 == 0,
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTodaysRecordsOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()

	yesterday := service.NewConfirmationService(db, service.FixedClock{Day: "2025-03-09"}, nil, logger.NewNop())
	today := service.NewConfirmationService(db, service.FixedClock{Day: "2025-03-10"}, nil, logger.NewNop())

	require.NoError(t, yesterday.Confirm(ctx, &models.MealRecord{
		PersonID: "resident-1", PersonType: models.PersonTypeResident, MealConfirmed: true,
	}))
	require.NoError(t, today.Confirm(ctx, &models.MealRecord{
		PersonID: "resident-1", PersonType: models.PersonTypeResident, MealConfirmed: false,
	}))

	records, err := today.TodaysRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-03-10", records[0].Date)
	assert.False(t, records[0].MealConfirmed)
}
