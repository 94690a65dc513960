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

type ShiftRepository struct {
	cache *cache.Cache
}

func NewShiftRepository(cache *cache.Cache) *ShiftRepository {
	return &ShiftRepository{cache: cache}
}

// Open starts a shift for a cashier at a station. A cashier can only hold
// one active shift at a time; the check runs under a per-cashier lock.
func (r *ShiftRepository) Open(ctx context.Context, shift *models.CashierShift) error {
	lockKey := fmt.Sprintf("shift_lock:cashier:%s", shift.CashierID)

	return database.WithEntityLock(ctx, lockKey, func() error {
		var count int64
		err := database.DB.Model(&models.CashierShift{}).
			Where("cashier_id = ? AND status = ?", shift.CashierID, models.ShiftStatusActive).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check active shifts: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("cashier %s already has an active shift: %w", shift.CashierID, models.ErrValidation)
		}

		shift.ID = uuid.New().String()
		shift.Status = models.ShiftStatusActive
		shift.OpenedAt = time.Now()
		if err := database.DB.Create(shift).Error; err != nil {
			return fmt.Errorf("failed to open shift: %w", err)
		}
		return nil
	})
}

// Close ends a shift, storing the counted cash and variance computed by the
// reconciler. Closing an already-closed shift is rejected.
func (r *ShiftRepository) Close(ctx context.Context, shiftID string, countedCash, variance *int64) (*models.CashierShift, error) {
	lockKey := fmt.Sprintf("shift_lock:%s", shiftID)
	var shift models.CashierShift

	err := database.WithEntityLock(ctx, lockKey, func() error {
		if err := database.DB.First(&shift, "id = ?", shiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("shift not found: %w", models.ErrValidation)
			}
			return fmt.Errorf("failed to find shift: %w", err)
		}
		if shift.Status != models.ShiftStatusActive {
			return fmt.Errorf("shift %s is already closed: %w", shiftID, models.ErrInvalidStateTransition)
		}

		now := time.Now()
		shift.Status = models.ShiftStatusClosed
		shift.ClosedAt = &now
		shift.CountedCash = countedCash
		shift.CashVariance = variance
		if err := database.DB.Save(&shift).Error; err != nil {
			return fmt.Errorf("failed to close shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*models.CashierShift, error) {
	var shift models.CashierShift
	err := database.DB.First(&shift, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return &shift, nil
}
