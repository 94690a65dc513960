package services

import (
	"HavenCare/models"
	"HavenCare/repositories"
	"HavenCare/utils"
	"context"
	"fmt"
)

type PaymentService struct {
	payments *repositories.PaymentRepository
	shifts   *repositories.ShiftRepository
}

func NewPaymentService(payments *repositories.PaymentRepository, shifts *repositories.ShiftRepository) *PaymentService {
	return &PaymentService{payments: payments, shifts: shifts}
}

// RecordPayment validates and records one payment split. The overpayment
// guard and bill update run under the bill's entity lock in the repository.
func (s *PaymentService) RecordPayment(ctx context.Context, payment *models.Payment) (*models.Bill, error) {
	if err := utils.ValidatePaymentInput(payment); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrValidation)
	}
	if payment.ShiftID != nil {
		shift, err := s.shifts.GetByID(ctx, *payment.ShiftID)
		if err != nil {
			return nil, err
		}
		if shift == nil || shift.Status != models.ShiftStatusActive {
			return nil, fmt.Errorf("shift is not active: %w", models.ErrValidation)
		}
	}
	return s.payments.Record(ctx, payment)
}

func (s *PaymentService) ListByBill(ctx context.Context, billID string) ([]models.Payment, error) {
	return s.payments.ListByBill(ctx, billID)
}

// CalculateShiftStats aggregates a shift's payments into reconciliation
// totals. It is pure: given the same payment list and cash count it always
// produces the same stats, with no hidden state.
func CalculateShiftStats(shiftID string, payments []models.Payment, countedCash *int64) models.ShiftStats {
	stats := models.ShiftStats{
		ShiftID:        shiftID,
		TotalsByMethod: make(map[string]int64),
	}
	for _, payment := range payments {
		stats.TotalsByMethod[payment.Method] += payment.Amount
		stats.TransactionCount++
		stats.GrandTotal += payment.Amount
	}
	if countedCash != nil {
		variance := *countedCash - stats.TotalsByMethod[models.PaymentMethodCash]
		stats.CountedCash = countedCash
		stats.CashVariance = &variance
	}
	return stats
}

// ShiftStats recomputes the reconciliation summary for a shift from its
// payment list.
func (s *PaymentService) ShiftStats(ctx context.Context, shiftID string) (*models.ShiftStats, error) {
	shift, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, fmt.Errorf("shift not found: %w", models.ErrValidation)
	}
	payments, err := s.payments.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	stats := CalculateShiftStats(shiftID, payments, shift.CountedCash)
	return &stats, nil
}

// OpenShift starts a cashier shift.
func (s *PaymentService) OpenShift(ctx context.Context, shift *models.CashierShift) error {
	if shift.Station == "" || shift.CashierID == "" {
		return fmt.Errorf("station and cashier are required: %w", models.ErrValidation)
	}
	return s.shifts.Open(ctx, shift)
}

// CloseShift reconciles and closes a shift. When a physical cash count is
// supplied, the variance against recorded cash is stored with the shift.
func (s *PaymentService) CloseShift(ctx context.Context, shiftID string, countedCash *int64) (*models.CashierShift, *models.ShiftStats, error) {
	payments, err := s.payments.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, nil, err
	}
	stats := CalculateShiftStats(shiftID, payments, countedCash)

	shift, err := s.shifts.Close(ctx, shiftID, countedCash, stats.CashVariance)
	if err != nil {
		return nil, nil, err
	}
	return shift, &stats, nil
}

func (s *PaymentService) GetShift(ctx context.Context, id string) (*models.CashierShift, error) {
	return s.shifts.GetByID(ctx, id)
}
