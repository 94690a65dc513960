package services

import (
	"HavenCare/config"
	"HavenCare/models"
	"HavenCare/repositories"
	"HavenCare/utils"
	"context"
	"fmt"
	"log"
	"time"
)

type BillingCodeService struct {
	codes    *repositories.BillingCodeRepository
	bills    *repositories.BillRepository
	patients *repositories.PatientRepository
	ttl      time.Duration
	codeLen  int
}

func NewBillingCodeService(codes *repositories.BillingCodeRepository, bills *repositories.BillRepository, patients *repositories.PatientRepository) *BillingCodeService {
	return &BillingCodeService{
		codes:    codes,
		bills:    bills,
		patients: patients,
		ttl:      config.LoadBillingCodeTTL(),
		codeLen:  config.LoadBillingCodeLen(),
	}
}

// Issue creates a deferred-payment code for a bill with an outstanding
// balance and emails it to the patient when an address is on file. Email
// delivery is best-effort; the code is valid either way.
func (s *BillingCodeService) Issue(ctx context.Context, billID string) (*models.BillingCode, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("bill %s not found: %w", billID, models.ErrValidation)
	}
	if bill.IsClosed() {
		return nil, fmt.Errorf("bill %s is %s: %w", billID, bill.Status, models.ErrInvalidStateTransition)
	}
	if bill.Balance <= 0 {
		return nil, fmt.Errorf("bill %s has no outstanding balance: %w", billID, models.ErrValidation)
	}

	now := time.Now()
	code := &models.BillingCode{
		Code:      utils.GenerateBillingCode(s.codeLen),
		BillID:    bill.BillID,
		PatientID: bill.PatientID,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.codes.Create(ctx, code); err != nil {
		return nil, err
	}

	patient, err := s.patients.GetByID(ctx, bill.PatientID)
	if err == nil && patient != nil && patient.Email != "" {
		if err := utils.SendBillingCodeEmail(patient.Email, code.Code, code.ExpiresAt); err != nil {
			log.Printf("Failed to email billing code for bill %s: %v", billID, err)
		}
	}

	return code, nil
}

// Redeem spends a code once. Expired, already-redeemed, and unknown codes
// all fail the same way so a cashier terminal cannot probe for valid ones.
func (s *BillingCodeService) Redeem(ctx context.Context, code, cashierID string) (*models.BillingCode, error) {
	return s.codes.Redeem(ctx, code, cashierID, time.Now())
}

// Lookup fetches a code's audit row for the cashier desk.
func (s *BillingCodeService) Lookup(ctx context.Context, code string) (*models.BillingCode, error) {
	return s.codes.GetByCode(ctx, code)
}
