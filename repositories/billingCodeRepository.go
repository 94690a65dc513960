package repositories

import (
	"HavenCare/cache"
	"HavenCare/database"
	"HavenCare/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

type BillingCodeRepository struct {
	cache *cache.Cache
}

func NewBillingCodeRepository(cache *cache.Cache) *BillingCodeRepository {
	return &BillingCodeRepository{cache: cache}
}

// Create persists the code's audit row and mirrors it into redis with the
// same TTL so cashier-desk lookups stay off postgres.
func (r *BillingCodeRepository) Create(ctx context.Context, code *models.BillingCode) error {
	if err := database.DB.Create(code).Error; err != nil {
		return fmt.Errorf("failed to create billing code: %w", err)
	}
	ttl := time.Until(code.ExpiresAt)
	if ttl > 0 {
		if err := r.cache.Set(ctx, r.getCodeCacheKey(code.Code), code.BillID, ttl); err != nil {
			log.Printf("Failed to cache billing code: %v", err)
		}
	}
	return nil
}

func (r *BillingCodeRepository) GetByCode(ctx context.Context, code string) (*models.BillingCode, error) {
	var billingCode models.BillingCode
	err := database.DB.First(&billingCode, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing code: %w", err)
	}
	return &billingCode, nil
}

// Redeem marks a code as spent. The conditional update on redeemed_at is the
// double-spend guard: of two concurrent redemptions, only one can flip the
// row. Validity is judged against the postgres row, not the redis mirror, so
// a cache flush can neither resurrect nor invalidate a code.
func (r *BillingCodeRepository) Redeem(ctx context.Context, code, cashierID string, now time.Time) (*models.BillingCode, error) {
	lockKey := fmt.Sprintf("billing_code_lock:%s", code)
	var billingCode models.BillingCode

	err := database.WithEntityLock(ctx, lockKey, func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&billingCode, "code = ?", code).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("unknown code: %w", models.ErrBillingCodeInvalid)
				}
				return fmt.Errorf("failed to find billing code: %w", err)
			}

			if !billingCode.Redeemable(now) {
				return fmt.Errorf("code %s: %w", code, models.ErrBillingCodeInvalid)
			}

			result := tx.Model(&models.BillingCode{}).
				Where("code = ? AND redeemed_at IS NULL", code).
				Updates(map[string]interface{}{
					"redeemed_at": now,
					"redeemed_by": cashierID,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to redeem billing code: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("code %s already redeemed: %w", code, models.ErrBillingCodeInvalid)
			}

			billingCode.RedeemedAt = &now
			billingCode.RedeemedBy = cashierID
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if err := r.cache.Delete(ctx, r.getCodeCacheKey(code)); err != nil {
		log.Printf("Failed to delete billing code cache: %v", err)
	}
	return &billingCode, nil
}

func (r *BillingCodeRepository) getCodeCacheKey(code string) string {
	return fmt.Sprintf("billing_code_cache:%s", code)
}
