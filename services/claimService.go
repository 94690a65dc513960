package services

import (
	"HavenCare/models"
	"HavenCare/repositories"
	"context"
	"fmt"
	"log"
	"time"
)

type ClaimService struct {
	claims    *repositories.ClaimRepository
	bills     *repositories.BillRepository
	payments  *repositories.PaymentRepository
	overrides *repositories.OverrideRepository
	patients  *repositories.PatientRepository
}

func NewClaimService(
	claims *repositories.ClaimRepository,
	bills *repositories.BillRepository,
	payments *repositories.PaymentRepository,
	overrides *repositories.OverrideRepository,
	patients *repositories.PatientRepository,
) *ClaimService {
	return &ClaimService{
		claims:    claims,
		bills:     bills,
		payments:  payments,
		overrides: overrides,
		patients:  patients,
	}
}

// ClaimItemInput carries the clinical fields a claims officer attaches to a
// bill item when drafting a claim.
type ClaimItemInput struct {
	BillItemID            uint   `json:"bill_item_id"`
	Diagnosis             string `json:"diagnosis"`
	ClinicalJustification string `json:"clinical_justification"`
	AuthorizationCode     string `json:"authorization_code"`
}

// CreateDraft builds a draft claim from one or more bills. Claim items
// mirror the bill items; only items with an HMO share are worth claiming,
// but pending-authorization items are carried too so submission can check
// them.
func (s *ClaimService) CreateDraft(ctx context.Context, providerID, patientID string, billIDs []string, itemInputs []ClaimItemInput, actor string) (*models.HMOClaim, error) {
	if len(billIDs) == 0 {
		return nil, fmt.Errorf("claim needs at least one bill: %w", models.ErrValidation)
	}

	enrollment, err := s.patients.ActiveEnrollment(ctx, patientID, providerID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("patient %s has no active enrollment with provider %s: %w", patientID, providerID, models.ErrValidation)
	}

	inputsByItem := make(map[uint]ClaimItemInput, len(itemInputs))
	for _, in := range itemInputs {
		inputsByItem[in.BillItemID] = in
	}

	var bills []models.Bill
	var items []models.ClaimItem
	var claimed int64
	for _, billID := range billIDs {
		bill, err := s.bills.GetByID(ctx, billID)
		if err != nil {
			return nil, err
		}
		if bill == nil {
			return nil, fmt.Errorf("bill %s not found: %w", billID, models.ErrValidation)
		}
		if bill.PatientID != patientID {
			return nil, fmt.Errorf("bill %s belongs to another patient: %w", billID, models.ErrValidation)
		}
		if bill.ClaimID != nil {
			return nil, fmt.Errorf("bill %s is already on claim %s: %w", billID, *bill.ClaimID, models.ErrValidation)
		}
		bills = append(bills, *bill)

		for _, billItem := range bill.Items {
			if billItem.HMOCoveredAmount == 0 && !billItem.AuthorizationPending {
				continue
			}
			in := inputsByItem[billItem.ID]
			items = append(items, models.ClaimItem{
				BillItemID:             billItem.ID,
				Description:            billItem.Description,
				Category:               billItem.Category,
				Quantity:               billItem.Quantity,
				UnitPrice:              billItem.UnitPrice,
				Discount:               billItem.Discount,
				Total:                  billItem.Total,
				HMOCoveredAmount:       billItem.HMOCoveredAmount,
				PatientLiabilityAmount: billItem.PatientLiabilityAmount,
				Diagnosis:              in.Diagnosis,
				ClinicalJustification:  in.ClinicalJustification,
				AuthorizationCode:      in.AuthorizationCode,
				AuthorizationPending:   billItem.AuthorizationPending,
			})
			claimed += billItem.HMOCoveredAmount
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no claimable items on the given bills: %w", models.ErrValidation)
	}

	claim := &models.HMOClaim{
		HMOProviderID: providerID,
		EnrollmentID:  enrollment.ID,
		PatientID:     patientID,
		ClaimedAmount: claimed,
		CreatedBy:     actor,
		Bills:         bills,
		Items:         items,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// transition wraps the repository's atomic transition with the state-machine
// check. apply mutates claim fields for the target state and returns the
// previous values of everything it touched; status is snapshotted here.
func (s *ClaimService) transition(ctx context.Context, claimID string, expectedVersion int, actor, target string, apply func(claim *models.HMOClaim) (map[string]interface{}, error)) (*models.HMOClaim, error) {
	return s.claims.Transition(ctx, claimID, expectedVersion, actor, func(claim *models.HMOClaim) (map[string]interface{}, error) {
		if !models.CanTransitionClaim(claim.Status, target) {
			return nil, fmt.Errorf("cannot move claim %s from %s to %s: %w",
				claim.ID, claim.Status, target, models.ErrInvalidStateTransition)
		}

		previous := map[string]interface{}{"status": claim.Status}
		if apply != nil {
			extra, err := apply(claim)
			if err != nil {
				return nil, err
			}
			for field, value := range extra {
				previous[field] = value
			}
		}
		claim.Status = target
		return previous, nil
	})
}

// Submit sends a draft claim to the insurer. Items still awaiting
// pre-authorization block submission unless the patient has an emergency
// override in force.
func (s *ClaimService) Submit(ctx context.Context, claimID string, expectedVersion int, actor string) (*models.HMOClaim, error) {
	return s.transition(ctx, claimID, expectedVersion, actor, models.ClaimStatusSubmitted, func(claim *models.HMOClaim) (map[string]interface{}, error) {
		pending := 0
		for _, item := range claim.Items {
			if item.AuthorizationPending {
				pending++
			}
		}
		if pending > 0 {
			override, err := s.overrides.ActiveForPatient(ctx, claim.PatientID, time.Now())
			if err != nil {
				return nil, err
			}
			if override == nil {
				return nil, fmt.Errorf("%d item(s) awaiting pre-authorization: %w", pending, models.ErrValidation)
			}
		}

		previous := map[string]interface{}{"submitted_at": claim.SubmittedAt}
		now := time.Now()
		claim.SubmittedAt = &now
		return previous, nil
	})
}

// MarkProcessing records that the insurer has picked up the claim.
func (s *ClaimService) MarkProcessing(ctx context.Context, claimID string, expectedVersion int, actor string) (*models.HMOClaim, error) {
	return s.transition(ctx, claimID, expectedVersion, actor, models.ClaimStatusProcessing, nil)
}

// Approve records the insurer's approval and the amount granted.
func (s *ClaimService) Approve(ctx context.Context, claimID string, expectedVersion int, approvedAmount int64, actor string) (*models.HMOClaim, error) {
	if approvedAmount < 0 {
		return nil, fmt.Errorf("approved amount cannot be negative: %w", models.ErrValidation)
	}
	return s.transition(ctx, claimID, expectedVersion, actor, models.ClaimStatusApproved, func(claim *models.HMOClaim) (map[string]interface{}, error) {
		if approvedAmount > claim.ClaimedAmount {
			return nil, fmt.Errorf("approved amount %d exceeds claimed amount %d: %w",
				approvedAmount, claim.ClaimedAmount, models.ErrValidation)
		}
		previous := map[string]interface{}{"approved_amount": claim.ApprovedAmount}
		claim.ApprovedAmount = approvedAmount
		return previous, nil
	})
}

// Deny records the insurer's denial.
func (s *ClaimService) Deny(ctx context.Context, claimID string, expectedVersion int, denialReason, actor string) (*models.HMOClaim, error) {
	if denialReason == "" {
		return nil, fmt.Errorf("denial reason is required: %w", models.ErrValidation)
	}
	return s.transition(ctx, claimID, expectedVersion, actor, models.ClaimStatusDenied, func(claim *models.HMOClaim) (map[string]interface{}, error) {
		previous := map[string]interface{}{"denial_reason": claim.DenialReason}
		claim.DenialReason = denialReason
		return previous, nil
	})
}

// Resubmit sends a denied claim back to the insurer with notes on what
// changed.
func (s *ClaimService) Resubmit(ctx context.Context, claimID string, expectedVersion int, notes, actor string) (*models.HMOClaim, error) {
	if notes == "" {
		return nil, fmt.Errorf("resubmission notes are required: %w", models.ErrValidation)
	}
	return s.transition(ctx, claimID, expectedVersion, actor, models.ClaimStatusSubmitted, func(claim *models.HMOClaim) (map[string]interface{}, error) {
		previous := map[string]interface{}{
			"resubmission_notes": claim.ResubmissionNotes,
			"submitted_at":       claim.SubmittedAt,
		}
		claim.ResubmissionNotes = notes
		now := time.Now()
		claim.SubmittedAt = &now
		return previous, nil
	})
}

// MarkPaid records the insurer's payout. The approved amount is applied to
// the linked bills as hmo-method payments through the reconciler, oldest
// bill first, so the payout is visible in shift and bill positions.
func (s *ClaimService) MarkPaid(ctx context.Context, claimID string, expectedVersion int, actor string) (*models.HMOClaim, error) {
	claim, err := s.transition(ctx, claimID, expectedVersion, actor, models.ClaimStatusPaid, func(claim *models.HMOClaim) (map[string]interface{}, error) {
		previous := map[string]interface{}{"processed_at": claim.ProcessedAt}
		now := time.Now()
		claim.ProcessedAt = &now
		return previous, nil
	})
	if err != nil {
		return nil, err
	}

	remaining := claim.ApprovedAmount
	full, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	for _, bill := range full.Bills {
		if remaining <= 0 {
			break
		}
		amount := bill.HMOTotalCoverage
		if amount > remaining {
			amount = remaining
		}
		if amount > bill.Balance {
			amount = bill.Balance
		}
		if amount <= 0 {
			continue
		}
		claimID := claim.ID
		providerID := claim.HMOProviderID
		payment := &models.Payment{
			BillID:        bill.BillID,
			ClaimID:       &claimID,
			Amount:        amount,
			Method:        models.PaymentMethodHMO,
			HMOProviderID: &providerID,
			CashierID:     actor,
			Reference:     fmt.Sprintf("claim payout %s", claim.ID),
		}
		if _, err := s.payments.Record(ctx, payment); err != nil {
			// The claim is already paid; a payout split that cannot apply is
			// surfaced for manual reconciliation rather than rolling back
			// the insurer's status.
			log.Printf("Failed to apply claim %s payout to bill %s: %v", claim.ID, bill.BillID, err)
			continue
		}
		remaining -= amount
	}
	return claim, nil
}

// Withdraw pulls a claim back before settlement. Cost can be reassigned to
// the patient by linking the private bill and payment created for it.
func (s *ClaimService) Withdraw(ctx context.Context, claimID string, expectedVersion int, reason string, privateBillID, privatePaymentID *string, actor string) (*models.HMOClaim, error) {
	if !models.ValidWithdrawalReason(reason) {
		return nil, fmt.Errorf("withdrawal reason %q is not recognized: %w", reason, models.ErrValidation)
	}
	return s.transition(ctx, claimID, expectedVersion, actor, models.ClaimStatusWithdrawn, func(claim *models.HMOClaim) (map[string]interface{}, error) {
		previous := map[string]interface{}{
			"withdrawal_reason":  claim.WithdrawalReason,
			"private_bill_id":    claim.PrivateBillID,
			"private_payment_id": claim.PrivatePaymentID,
		}
		claim.WithdrawalReason = reason
		claim.PrivateBillID = privateBillID
		claim.PrivatePaymentID = privatePaymentID
		return previous, nil
	})
}

// Retract reverses a claim after settlement (clawback). Money already moved
// is corrected by a separate financial adjustment; the retraction itself
// only closes the claim and keeps the full history.
func (s *ClaimService) Retract(ctx context.Context, claimID string, expectedVersion int, notes, actor string) (*models.HMOClaim, error) {
	if notes == "" {
		return nil, fmt.Errorf("retraction notes are required: %w", models.ErrValidation)
	}
	return s.transition(ctx, claimID, expectedVersion, actor, models.ClaimStatusRetracted, func(claim *models.HMOClaim) (map[string]interface{}, error) {
		previous := map[string]interface{}{"retraction_notes": claim.RetractionNotes}
		claim.RetractionNotes = notes
		return previous, nil
	})
}

func (s *ClaimService) GetByID(ctx context.Context, id string) (*models.HMOClaim, error) {
	return s.claims.GetByID(ctx, id)
}

func (s *ClaimService) List(ctx context.Context, filter models.ClaimFilter) ([]models.HMOClaim, error) {
	return s.claims.List(ctx, filter)
}
