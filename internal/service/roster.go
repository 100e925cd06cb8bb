package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Thibault-Renand/OctoPulse/internal/database"
	"github.com/Thibault-Renand/OctoPulse/internal/logger"
	"github.com/Thibault-Renand/OctoPulse/internal/models"
)

var ErrMissingName = errors.New("name is required")

// RosterService owns the resident and staff lists. The confirmation engine
// only ever reads them.
type RosterService struct {
	db    *gorm.DB
	clock Clock
	cache *database.SummaryCache
	log   *logger.Logger
}

func NewRosterService(db *gorm.DB, clock Clock, cache *database.SummaryCache, log *logger.Logger) *RosterService {
	return &RosterService{
		db:    db,
		clock: clock,
		cache: cache,
		log:   log.With("service", "roster"),
	}
}

// Roster returns the full resident and staff lists in one read, as the
// summary aggregator consumes them.
func (s *RosterService) Roster(ctx context.Context) (Roster, error) {
	residents, err := s.ListResidents(ctx)
	if err != nil {
		return Roster{}, err
	}
	staff, err := s.ListStaff(ctx)
	if err != nil {
		return Roster{}, err
	}
	return Roster{Residents: residents, Staff: staff}, nil
}

func (s *RosterService) ListResidents(ctx context.Context) ([]models.Resident, error) {
	var residents []models.Resident
	if err := s.db.WithContext(ctx).Order("name, first_name").Find(&residents).Error; err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	return residents, nil
}

// CreateResident inserts a new resident, generating an id when none is given.
func (s *RosterService) CreateResident(ctx context.Context, resident *models.Resident) error {
	if strings.TrimSpace(resident.Name) == "" {
		return ErrMissingName
	}
	if resident.ID == "" {
		resident.ID = "resident-" + uuid.NewString()
	}
	if resident.Allergies == nil {
		resident.Allergies = models.StringList{}
	}
	if resident.MealTexture == "" {
		resident.MealTexture = models.TextureNormal
	}
	if resident.MealType == "" {
		resident.MealType = models.MealTypeNone
	}
	if err := s.db.WithContext(ctx).Create(resident).Error; err != nil {
		return fmt.Errorf("failed to create resident: %w", err)
	}
	s.invalidateSummary(ctx)
	return nil
}

// UpdateResident replaces a resident's editable profile fields. Already
// confirmed meal records keep their snapshot; profile edits only affect
// future confirmations.
func (s *RosterService) UpdateResident(ctx context.Context, id string, resident *models.Resident) error {
	result := s.db.WithContext(ctx).Model(&models.Resident{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":         resident.Name,
		"first_name":   resident.FirstName,
		"allergies":    resident.Allergies,
		"meal_texture": resident.MealTexture,
		"meal_type":    resident.MealType,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update resident %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.invalidateSummary(ctx)
	return nil
}

func (s *RosterService) DeleteResident(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Resident{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete resident %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.invalidateSummary(ctx)
	return nil
}

// AdjustTexture moves a resident's meal texture one step along the ordered
// texture levels, clamped at both ends. Returns the resulting texture.
func (s *RosterService) AdjustTexture(ctx context.Context, id string, finer bool) (string, error) {
	var resident models.Resident
	if err := s.db.WithContext(ctx).First(&resident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", gorm.ErrRecordNotFound
		}
		return "", fmt.Errorf("failed to load resident %s: %w", id, err)
	}

	current := -1
	for i, level := range models.TextureLevels {
		if level == resident.MealTexture {
			current = i
			break
		}
	}
	if current == -1 {
		// Unknown texture; leave it alone rather than guess a position.
		return resident.MealTexture, nil
	}

	next := current
	if finer && current < len(models.TextureLevels)-1 {
		next = current + 1
	} else if !finer && current > 0 {
		next = current - 1
	}
	if next == current {
		return resident.MealTexture, nil
	}

	texture := models.TextureLevels[next]
	if err := s.db.WithContext(ctx).Model(&resident).Update("meal_texture", texture).Error; err != nil {
		return "", fmt.Errorf("failed to update texture for %s: %w", id, err)
	}
	s.invalidateSummary(ctx)
	return texture, nil
}

func (s *RosterService) ListStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.db.WithContext(ctx).Order("name, first_name").Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

// CreateStaff inserts a new staff member with a generated id and a default
// role when none is given.
func (s *RosterService) CreateStaff(ctx context.Context, staff *models.Staff) error {
	if strings.TrimSpace(staff.Name) == "" {
		return ErrMissingName
	}
	if staff.ID == "" {
		staff.ID = "staff-" + uuid.NewString()
	}
	if staff.Role == "" {
		staff.Role = models.RoleStaff
	}
	if err := s.db.WithContext(ctx).Create(staff).Error; err != nil {
		return fmt.Errorf("failed to create staff member: %w", err)
	}
	// A staff record confirmed while its id was off-roster is ignored by the
	// aggregator, so adding the id can change today's summary.
	s.invalidateSummary(ctx)
	return nil
}

func (s *RosterService) invalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, s.clock.Today()); err != nil {
		s.log.Warn("summary cache invalidation failed", "error", err)
	}
}
