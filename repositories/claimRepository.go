package repositories

import (
	"HavenCare/cache"
	"HavenCare/database"
	"HavenCare/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ClaimCacheExpiry = 24 * time.Hour
)

type ClaimRepository struct {
	cache *cache.Cache
}

func NewClaimRepository(cache *cache.Cache) *ClaimRepository {
	return &ClaimRepository{cache: cache}
}

// Create persists a draft claim, its items, its bill links, and version 1 of
// its history in one transaction. A claim is born with
// currentVersion == len(versions) == 1.
func (r *ClaimRepository) Create(ctx context.Context, claim *models.HMOClaim) error {
	var nextID string
	if err := database.DB.Raw("SELECT 'CL-' || LPAD(nextval('claim_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
		return fmt.Errorf("failed to obtain next claim id: %w", err)
	}
	claim.ID = nextID
	claim.Status = models.ClaimStatusDraft
	claim.CurrentVersion = 1
	for i := range claim.Items {
		claim.Items[i].ClaimID = nextID
	}

	billIDs := make([]string, 0, len(claim.Bills))
	for _, bill := range claim.Bills {
		billIDs = append(billIDs, bill.BillID)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(claim).Error; err != nil {
			if rollbackErr := database.DB.Exec("SELECT setval('claim_id_seq', (SELECT last_value FROM claim_id_seq) - 1, false)").Error; rollbackErr != nil {
				return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to create claim: %w", err)
		}

		version := models.ClaimVersion{
			ClaimID:   claim.ID,
			Version:   1,
			Status:    models.ClaimStatusDraft,
			ChangedAt: time.Now(),
			ChangedBy: claim.CreatedBy,
		}
		if err := tx.Create(&version).Error; err != nil {
			return fmt.Errorf("failed to create initial claim version: %w", err)
		}
		claim.Versions = []models.ClaimVersion{version}

		// Point the bills at their funding claim.
		if len(billIDs) > 0 {
			if err := tx.Model(&models.Bill{}).Where("bill_id IN ?", billIDs).Update("claim_id", claim.ID).Error; err != nil {
				return fmt.Errorf("failed to link bills to claim: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	billKeys := make([]string, 0, len(billIDs))
	for _, billID := range billIDs {
		billKeys = append(billKeys, fmt.Sprintf("bill_cache:%s", billID))
	}
	if len(billKeys) > 0 {
		if err := r.cache.DeleteBatch(ctx, billKeys...); err != nil {
			log.Printf("Failed to delete bill caches: %v", err)
		}
	}
	return nil
}

// Transition applies one state transition atomically with its version
// append. The claim is loaded under the entity lock, the caller's expected
// version is checked against the stored one, mutate applies the change and
// returns the snapshot of the fields it overwrote, and the version counter
// moves by exactly 1. Any failure leaves the claim untouched.
func (r *ClaimRepository) Transition(
	ctx context.Context,
	claimID string,
	expectedVersion int,
	changedBy string,
	mutate func(claim *models.HMOClaim) (map[string]interface{}, error),
) (*models.HMOClaim, error) {
	lockKey := fmt.Sprintf("claim_lock:%s", claimID)
	var claim models.HMOClaim

	err := database.WithEntityLock(ctx, lockKey, func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Preload("Items").First(&claim, "id = ?", claimID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("claim not found: %w", models.ErrValidation)
				}
				return fmt.Errorf("failed to find claim: %w", err)
			}

			if claim.CurrentVersion != expectedVersion {
				return fmt.Errorf("claim %s is at version %d, caller expected %d: %w",
					claimID, claim.CurrentVersion, expectedVersion, models.ErrConcurrentModification)
			}

			previousValues, err := mutate(&claim)
			if err != nil {
				return err
			}

			previousJSON, err := json.Marshal(previousValues)
			if err != nil {
				return fmt.Errorf("failed to marshal previous values: %w", err)
			}

			claim.CurrentVersion++
			version := models.ClaimVersion{
				ClaimID:        claim.ID,
				Version:        claim.CurrentVersion,
				Status:         claim.Status,
				ChangedAt:      time.Now(),
				ChangedBy:      changedBy,
				PreviousValues: previousJSON,
			}
			if err := tx.Create(&version).Error; err != nil {
				return fmt.Errorf("failed to append claim version: %w", err)
			}

			if err := tx.Omit(clause.Associations).Save(&claim).Error; err != nil {
				return fmt.Errorf("failed to update claim: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if err := r.cache.Delete(ctx, r.getClaimCacheKey(claimID)); err != nil {
		return nil, fmt.Errorf("failed to delete claim cache: %w", err)
	}
	return &claim, nil
}

func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*models.HMOClaim, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getClaimCacheKey(id)
	cachedClaim, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedClaim != "" {
		var claim models.HMOClaim
		if err := json.Unmarshal([]byte(cachedClaim), &claim); err == nil {
			return &claim, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get claim from cache: %v", err)
	}

	var claim models.HMOClaim
	err = database.DB.
		Preload("Items").
		Preload("Bills").
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version ASC")
		}).
		First(&claim, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	claimJSON, err := json.Marshal(claim)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claim: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, claimJSON, ClaimCacheExpiry); err != nil {
		log.Printf("Failed to set claim in cache: %v", err)
	}

	return &claim, nil
}

func (r *ClaimRepository) List(ctx context.Context, filter models.ClaimFilter) ([]models.HMOClaim, error) {
	query := database.DB.Model(&models.HMOClaim{}).Preload("Items")
	if filter.HMOProviderID != "" {
		query = query.Where("hmo_provider_id = ?", filter.HMOProviderID)
	}
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	var claims []models.HMOClaim
	if err := query.Order("created_at DESC").Find(&claims).Error; err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, nil
}

func (r *ClaimRepository) getClaimCacheKey(id string) string {
	return fmt.Sprintf("claim_cache:%s", id)
}
