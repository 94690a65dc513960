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
)

const (
	BillCacheExpiry = 24 * time.Hour
)

type BillRepository struct {
	cache *cache.Cache
}

func NewBillRepository(cache *cache.Cache) *BillRepository {
	return &BillRepository{cache: cache}
}

// Create persists an assembled bill and its items in one transaction.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	// Obtain the next sequence value outside the transaction
	var nextID string
	if err := database.DB.Raw("SELECT 'BL-' || LPAD(nextval('bill_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
		return fmt.Errorf("failed to obtain next bill id: %w", err)
	}
	bill.BillID = nextID
	for i := range bill.Items {
		bill.Items[i].BillID = nextID
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			if rollbackErr := database.DB.Exec("SELECT setval('bill_id_seq', (SELECT last_value FROM bill_id_seq) - 1, false)").Error; rollbackErr != nil {
				return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to create bill: %w", err)
		}
		return r.invalidate(ctx, bill.BillID, bill.PatientID)
	})
}

func (r *BillRepository) GetByID(ctx context.Context, id string) (*models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBillCacheKey(id)
	cachedBill, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBill != "" {
		var bill models.Bill
		if err := json.Unmarshal([]byte(cachedBill), &bill); err == nil {
			return &bill, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get bill from cache: %v", err)
	}

	var bill models.Bill
	err = database.DB.
		Preload("Items").
		First(&bill, "bill_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	billJSON, err := json.Marshal(bill)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bill: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, billJSON, BillCacheExpiry); err != nil {
		log.Printf("Failed to set bill in cache: %v", err)
	}

	return &bill, nil
}

func (r *BillRepository) List(ctx context.Context, filter models.BillFilter) ([]models.Bill, error) {
	query := database.DB.Model(&models.Bill{}).Preload("Items")
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DepartmentID != "" {
		query = query.Where("department_id = ?", filter.DepartmentID)
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

	var bills []models.Bill
	if err := query.Order("created_at DESC").Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// OverrideStatus applies an explicit terminal status (waived or refunded)
// under the bill's entity lock. Already-closed bills cannot be overridden
// again.
func (r *BillRepository) OverrideStatus(ctx context.Context, id, status string) (*models.Bill, error) {
	if status != models.BillStatusWaived && status != models.BillStatusRefunded {
		return nil, fmt.Errorf("%q is not a terminal override status: %w", status, models.ErrInvalidStateTransition)
	}

	lockKey := fmt.Sprintf("bill_lock:%s", id)
	var bill models.Bill

	err := database.WithEntityLock(ctx, lockKey, func() error {
		if err := database.DB.Preload("Items").First(&bill, "bill_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("bill not found: %w", models.ErrValidation)
			}
			return fmt.Errorf("failed to find bill: %w", err)
		}
		if bill.IsClosed() {
			return fmt.Errorf("bill %s is already %s: %w", id, bill.Status, models.ErrInvalidStateTransition)
		}
		bill.Status = status
		return database.DB.Model(&models.Bill{}).Where("bill_id = ?", id).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	if err := r.invalidate(ctx, id, bill.PatientID); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *BillRepository) invalidate(ctx context.Context, billID, patientID string) error {
	if err := r.cache.DeleteBatch(ctx, r.getBillCacheKey(billID), fmt.Sprintf("patient_cache:%s", patientID)); err != nil {
		return fmt.Errorf("failed to delete bill cache: %w", err)
	}
	return nil
}

func (r *BillRepository) getBillCacheKey(id string) string {
	return fmt.Sprintf("bill_cache:%s", id)
}
