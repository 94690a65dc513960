package repositories

import (
	"HavenCare/cache"
	"HavenCare/database"
	"HavenCare/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OverrideRepository struct {
	cache *cache.Cache
}

func NewOverrideRepository(cache *cache.Cache) *OverrideRepository {
	return &OverrideRepository{cache: cache}
}

// Grant creates an emergency override. At most one override may be in force
// per patient, enforced under a per-patient lock.
func (r *OverrideRepository) Grant(ctx context.Context, override *models.EmergencyOverride) error {
	lockKey := fmt.Sprintf("override_lock:%s", override.PatientID)

	return database.WithEntityLock(ctx, lockKey, func() error {
		var count int64
		err := database.DB.Model(&models.EmergencyOverride{}).
			Where("patient_id = ? AND is_active = ? AND expires_at > ?", override.PatientID, true, time.Now()).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check existing overrides: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("patient %s already has an active override: %w", override.PatientID, models.ErrValidation)
		}

		override.ID = uuid.New().String()
		override.IsActive = true
		if err := database.DB.Create(override).Error; err != nil {
			return fmt.Errorf("failed to grant override: %w", err)
		}
		return nil
	})
}

// Expire deactivates an override before its natural expiry.
func (r *OverrideRepository) Expire(ctx context.Context, id string) error {
	result := database.DB.Model(&models.EmergencyOverride{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to expire override: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no active override with id %s: %w", id, models.ErrValidation)
	}
	return nil
}

// ActiveForPatient returns the override currently in force for a patient, or
// nil when there is none.
func (r *OverrideRepository) ActiveForPatient(ctx context.Context, patientID string, now time.Time) (*models.EmergencyOverride, error) {
	var override models.EmergencyOverride
	err := database.DB.
		Where("patient_id = ? AND is_active = ? AND expires_at > ?", patientID, true, now).
		Order("created_at DESC").
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active override: %w", err)
	}
	return &override, nil
}
