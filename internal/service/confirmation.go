package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Thibault-Renand/OctoPulse/internal/database"
	"github.com/Thibault-Renand/OctoPulse/internal/logger"
	"github.com/Thibault-Renand/OctoPulse/internal/models"
)

var (
	ErrMissingPersonID   = errors.New("person id is required")
	ErrUnknownPersonType = errors.New("person type must be resident or staff")
)

// ConfirmationService owns the one-record-per-person-per-day guarantee for
// meal confirmations.
type ConfirmationService struct {
	db    *gorm.DB
	clock Clock
	cache *database.SummaryCache
	log   *logger.Logger
}

func NewConfirmationService(db *gorm.DB, clock Clock, cache *database.SummaryCache, log *logger.Logger) *ConfirmationService {
	return &ConfirmationService{
		db:    db,
		clock: clock,
		cache: cache,
		log:   log.With("service", "confirmation"),
	}
}

// Confirm records or updates a person's meal decision for the current day.
// The record's date field is ignored; the store stamps today itself. When a
// record for (person, today) already exists, only the confirmed flag and the
// resident meal snapshot are refreshed, so the record keeps its identity.
func (s *ConfirmationService) Confirm(ctx context.Context, record *models.MealRecord) error {
	if strings.TrimSpace(record.PersonID) == "" {
		return ErrMissingPersonID
	}
	if record.PersonType != models.PersonTypeResident && record.PersonType != models.PersonTypeStaff {
		return ErrUnknownPersonType
	}

	today := s.clock.Today()

	err := s.upsert(ctx, record, today)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the insert race against a concurrent confirm for the same
		// person; the retry finds the winner's row and updates it.
		err = s.upsert(ctx, record, today)
	}
	if err != nil {
		return fmt.Errorf("failed to confirm meal for %s: %w", record.PersonID, err)
	}

	if err := s.cache.Invalidate(ctx, today); err != nil {
		s.log.Warn("summary cache invalidation failed", "day", today, "error", err)
	}
	s.log.Debug("meal confirmed", "person_id", record.PersonID, "confirmed", record.MealConfirmed, "day", today)
	return nil
}

func (s *ConfirmationService) upsert(ctx context.Context, record *models.MealRecord, today string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lookup := tx.Where("person_id = ? AND date = ?", record.PersonID, today)
		if tx.Dialector.Name() == "postgres" {
			// Serializes concurrent confirms for the same person; the unique
			// index on (person_id, date) is the backstop.
			lookup = lookup.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing models.MealRecord
		err := lookup.First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]interface{}{
				"meal_confirmed": record.MealConfirmed,
			}
			if record.PersonType == models.PersonTypeResident {
				updates["allergies"] = record.Allergies
				updates["meal_texture"] = record.MealTexture
				updates["meal_type"] = record.MealType
			}
			return tx.Model(&existing).Updates(updates).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := *record
			fresh.ID = 0
			fresh.Date = today
			return tx.Create(&fresh).Error
		default:
			return err
		}
	})
}

// TodaysRecords returns every meal record for the current day. Order is not
// significant; consumers re-group.
func (s *ConfirmationService) TodaysRecords(ctx context.Context) ([]models.MealRecord, error) {
	var records []models.MealRecord
	if err := s.db.WithContext(ctx).
		Where("date = ?", s.clock.Today()).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load today's meal records: %w", err)
	}
	return records, nil
}
