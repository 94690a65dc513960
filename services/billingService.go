package services

import (
	"HavenCare/models"
	"HavenCare/repositories"
	"HavenCare/utils"
	"context"
	"fmt"
)

type BillingService struct {
	bills    *repositories.BillRepository
	patients *repositories.PatientRepository
	coverage *CoverageService
}

func NewBillingService(bills *repositories.BillRepository, patients *repositories.PatientRepository, coverage *CoverageService) *BillingService {
	return &BillingService{bills: bills, patients: patients, coverage: coverage}
}

// AssembleBill computes every derived money field on a bill from its
// resolved items. Item totals are recomputed from quantity, unit price, and
// discount; construction fails if any item total would be negative or the
// bill discount exceeds the subtotal. All math is int64 minor units.
func AssembleBill(items []models.BillItem, discount, tax int64) (*models.Bill, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("bill must have at least one item: %w", models.ErrValidation)
	}
	if discount < 0 || tax < 0 {
		return nil, fmt.Errorf("discount and tax cannot be negative: %w", models.ErrValidation)
	}

	var subtotal, hmoTotal, liabilityTotal int64
	for i := range items {
		item := &items[i]
		item.Total = item.Quantity*item.UnitPrice - item.Discount
		if item.Total < 0 {
			return nil, fmt.Errorf("item %q total is negative: %w", item.Description, models.ErrValidation)
		}
		if !item.SplitBalances() {
			return nil, fmt.Errorf("item %q split does not balance: %w", item.Description, models.ErrValidation)
		}
		subtotal += item.Total
		hmoTotal += item.HMOCoveredAmount
		liabilityTotal += item.PatientLiabilityAmount
	}

	if discount > subtotal {
		return nil, fmt.Errorf("discount %d exceeds subtotal %d: %w", discount, subtotal, models.ErrValidation)
	}

	total := subtotal - discount + tax
	bill := &models.Bill{
		Subtotal:              subtotal,
		Discount:              discount,
		Tax:                   tax,
		Total:                 total,
		AmountPaid:            0,
		Balance:               total,
		HMOTotalCoverage:      hmoTotal,
		PatientTotalLiability: liabilityTotal,
		Status:                models.BillStatusPending,
		Items:                 items,
	}
	return bill, nil
}

// CreateBill resolves coverage for the supplied items, assembles the bill,
// and persists it.
func (s *BillingService) CreateBill(ctx context.Context, patientID, departmentID string, episodeID *string, preAuthCode string, items []models.BillItem, discount, tax int64, actor string) (*models.Bill, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %s not found: %w", patientID, models.ErrValidation)
	}

	payer, err := s.coverage.BuildPayerContext(ctx, patient, preAuthCode)
	if err != nil {
		return nil, err
	}

	// Item totals must exist before resolution; the assembler recomputes and
	// re-checks them afterwards.
	for i := range items {
		items[i].Total = items[i].Quantity*items[i].UnitPrice - items[i].Discount
		if items[i].Total < 0 {
			return nil, fmt.Errorf("item %q total is negative: %w", items[i].Description, models.ErrValidation)
		}
	}
	if err := s.coverage.ResolveItems(ctx, payer, items); err != nil {
		return nil, err
	}

	bill, err := AssembleBill(items, discount, tax)
	if err != nil {
		return nil, err
	}
	bill.PatientID = patientID
	bill.DepartmentID = departmentID
	bill.EpisodeID = episodeID
	bill.CreatedBy = actor

	if err := utils.ValidateBillInput(bill); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrValidation)
	}

	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *BillingService) GetByID(ctx context.Context, id string) (*models.Bill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *BillingService) List(ctx context.Context, filter models.BillFilter) ([]models.Bill, error) {
	return s.bills.List(ctx, filter)
}

// Waive closes a bill without payment.
func (s *BillingService) Waive(ctx context.Context, id string) (*models.Bill, error) {
	return s.bills.OverrideStatus(ctx, id, models.BillStatusWaived)
}

// Refund marks a bill refunded. The money movement itself is an adjustment
// payment recorded separately; this only closes the bill.
func (s *BillingService) Refund(ctx context.Context, id string) (*models.Bill, error) {
	return s.bills.OverrideStatus(ctx, id, models.BillStatusRefunded)
}
