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

type PaymentRepository struct {
	cache *cache.Cache
}

func NewPaymentRepository(cache *cache.Cache) *PaymentRepository {
	return &PaymentRepository{cache: cache}
}

// Record persists a payment split against a bill and updates the bill's
// payment position. It runs entirely under the bill's entity lock: the
// overpayment guard reads the bill inside the lock, so two concurrent
// payments cannot both pass it against the same stale balance.
func (r *PaymentRepository) Record(ctx context.Context, payment *models.Payment) (*models.Bill, error) {
	lockKey := fmt.Sprintf("bill_lock:%s", payment.BillID)
	var bill models.Bill

	err := database.WithEntityLock(ctx, lockKey, func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&bill, "bill_id = ?", payment.BillID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("bill not found: %w", models.ErrValidation)
				}
				return fmt.Errorf("failed to find bill: %w", err)
			}

			if bill.IsClosed() {
				return fmt.Errorf("bill %s is %s and cannot accept payments: %w",
					bill.BillID, bill.Status, models.ErrInvalidStateTransition)
			}
			if payment.Amount > 0 && bill.AmountPaid+payment.Amount > bill.Total {
				return fmt.Errorf("split of %d against bill %s with balance %d: %w",
					payment.Amount, bill.BillID, bill.Balance, models.ErrOverpaymentRejected)
			}
			if payment.Amount < 0 && bill.AmountPaid+payment.Amount < 0 {
				return fmt.Errorf("adjustment would push amount paid below zero: %w", models.ErrValidation)
			}

			if payment.ID == "" {
				payment.ID = uuid.New().String()
			}
			if err := tx.Create(payment).Error; err != nil {
				return fmt.Errorf("failed to create payment: %w", err)
			}

			bill.AmountPaid += payment.Amount
			bill.Balance = bill.Total - bill.AmountPaid
			bill.Status = bill.DeriveStatus()

			return tx.Model(&models.Bill{}).Where("bill_id = ?", bill.BillID).Updates(map[string]interface{}{
				"amount_paid": bill.AmountPaid,
				"balance":     bill.Balance,
				"status":      bill.Status,
			}).Error
		})
	})
	if err != nil {
		return nil, err
	}

	if err := r.cache.Delete(ctx, fmt.Sprintf("bill_cache:%s", bill.BillID)); err != nil {
		return nil, fmt.Errorf("failed to delete bill cache: %w", err)
	}
	return &bill, nil
}

func (r *PaymentRepository) ListByBill(ctx context.Context, billID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := database.DB.
		Where("bill_id = ?", billID).
		Order("recorded_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for bill: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) ListByShift(ctx context.Context, shiftID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := database.DB.
		Where("shift_id = ?", shiftID).
		Order("recorded_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for shift: %w", err)
	}
	return payments, nil
}
