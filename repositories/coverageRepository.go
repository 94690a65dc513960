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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CoverageCacheExpiry = 24 * time.Hour
)

type CoverageRepository struct {
	cache *cache.Cache
}

func NewCoverageRepository(cache *cache.Cache) *CoverageRepository {
	return &CoverageRepository{cache: cache}
}

func (r *CoverageRepository) Create(ctx context.Context, rule *models.ServiceCoverage) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	rule.IsActive = true

	if err := database.DB.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create coverage rule: %w", err)
	}
	return r.invalidate(ctx, rule.HMOProviderID, rule.ServiceCategory)
}

// Supersede deactivates an existing rule and writes a replacement as a new
// row. Bills that resolved against the old rule keep their reference intact.
func (r *CoverageRepository) Supersede(ctx context.Context, id string, replacement *models.ServiceCoverage, actor string) (*models.ServiceCoverage, error) {
	lockKey := fmt.Sprintf("coverage_lock:%s", id)

	err := database.WithEntityLock(ctx, lockKey, func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			var old models.ServiceCoverage
			if err := tx.First(&old, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("coverage rule not found: %w", models.ErrCoverageNotFound)
				}
				return fmt.Errorf("failed to find coverage rule: %w", err)
			}

			if err := tx.Model(&old).Updates(map[string]interface{}{
				"is_active":  false,
				"updated_by": actor,
			}).Error; err != nil {
				return fmt.Errorf("failed to deactivate coverage rule: %w", err)
			}

			replacement.ID = uuid.New().String()
			replacement.HMOProviderID = old.HMOProviderID
			replacement.ServiceCategory = old.ServiceCategory
			replacement.IsActive = true
			replacement.UpdatedBy = actor
			if err := tx.Create(replacement).Error; err != nil {
				return fmt.Errorf("failed to create replacement coverage rule: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if err := r.invalidate(ctx, replacement.HMOProviderID, replacement.ServiceCategory); err != nil {
		return nil, err
	}
	return replacement, nil
}

// Deactivate retires a rule without a replacement. Rules are never deleted.
func (r *CoverageRepository) Deactivate(ctx context.Context, id string, actor string) error {
	lockKey := fmt.Sprintf("coverage_lock:%s", id)

	var rule models.ServiceCoverage
	err := database.WithEntityLock(ctx, lockKey, func() error {
		if err := database.DB.First(&rule, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("coverage rule not found: %w", models.ErrCoverageNotFound)
			}
			return fmt.Errorf("failed to find coverage rule: %w", err)
		}
		return database.DB.Model(&rule).Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": actor,
		}).Error
	})
	if err != nil {
		return err
	}
	return r.invalidate(ctx, rule.HMOProviderID, rule.ServiceCategory)
}

func (r *CoverageRepository) GetByID(ctx context.Context, id string) (*models.ServiceCoverage, error) {
	var rule models.ServiceCoverage
	err := database.DB.First(&rule, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coverage rule: %w", err)
	}
	return &rule, nil
}

// FindActive returns the active rule for a provider and service category,
// or nil when none exists.
func (r *CoverageRepository) FindActive(ctx context.Context, providerID, category string) (*models.ServiceCoverage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getActiveCacheKey(providerID, category)
	cachedRule, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedRule != "" {
		var rule models.ServiceCoverage
		if err := json.Unmarshal([]byte(cachedRule), &rule); err == nil {
			return &rule, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get coverage rule from cache: %v", err)
	}

	var rule models.ServiceCoverage
	err = database.DB.
		Where("hmo_provider_id = ? AND service_category = ? AND is_active = ?", providerID, category, true).
		Order("updated_at DESC").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active coverage rule: %w", err)
	}

	ruleJSON, err := json.Marshal(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal coverage rule: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, ruleJSON, CoverageCacheExpiry); err != nil {
		log.Printf("Failed to set coverage rule in cache: %v", err)
	}

	return &rule, nil
}

func (r *CoverageRepository) List(ctx context.Context, filter models.CoverageFilter) ([]models.ServiceCoverage, error) {
	query := database.DB.Model(&models.ServiceCoverage{})
	if filter.HMOProviderID != "" {
		query = query.Where("hmo_provider_id = ?", filter.HMOProviderID)
	}
	if filter.ServiceCategory != "" {
		query = query.Where("service_category = ?", filter.ServiceCategory)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var rules []models.ServiceCoverage
	if err := query.Order("created_at DESC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list coverage rules: %w", err)
	}
	return rules, nil
}

func (r *CoverageRepository) invalidate(ctx context.Context, providerID, category string) error {
	return r.cache.Delete(ctx, r.getActiveCacheKey(providerID, category))
}

func (r *CoverageRepository) getActiveCacheKey(providerID, category string) string {
	return fmt.Sprintf("coverage_cache:%s:%s", providerID, category)
}
