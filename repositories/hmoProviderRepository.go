package repositories

import (
	"HavenCare/cache"
	"HavenCare/database"
	"HavenCare/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HMOProviderRepository struct {
	cache *cache.Cache
}

func NewHMOProviderRepository(cache *cache.Cache) *HMOProviderRepository {
	return &HMOProviderRepository{cache: cache}
}

func (r *HMOProviderRepository) Create(ctx context.Context, provider *models.HMOProvider) error {
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	provider.IsActive = true
	if err := database.DB.Create(provider).Error; err != nil {
		return fmt.Errorf("failed to create HMO provider: %w", err)
	}
	return nil
}

func (r *HMOProviderRepository) GetByID(ctx context.Context, id string) (*models.HMOProvider, error) {
	var provider models.HMOProvider
	err := database.DB.First(&provider, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get HMO provider: %w", err)
	}
	return &provider, nil
}

func (r *HMOProviderRepository) GetAll(ctx context.Context) ([]models.HMOProvider, error) {
	var providers []models.HMOProvider
	if err := database.DB.Order("name ASC").Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all HMO providers: %w", err)
	}
	return providers, nil
}

func (r *HMOProviderRepository) Update(ctx context.Context, provider *models.HMOProvider) error {
	if err := database.DB.Save(provider).Error; err != nil {
		return fmt.Errorf("failed to update HMO provider: %w", err)
	}
	// A provider change (suspension, contract update) can affect every cached
	// rule under it, so the whole slice is flushed.
	return r.cache.DeleteAll(ctx, fmt.Sprintf("coverage_cache:%s:*", provider.ID))
}

type DepartmentRepository struct{}

func NewDepartmentRepository() *DepartmentRepository {
	return &DepartmentRepository{}
}

func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	if department.ID == "" {
		department.ID = uuid.New().String()
	}
	if err := database.DB.Create(department).Error; err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := database.DB.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to get all departments: %w", err)
	}
	return departments, nil
}
