package models

import (
	"encoding/json"
	"time"
)

// Claim lifecycle statuses.
const (
	ClaimStatusDraft      = "draft"
	ClaimStatusSubmitted  = "submitted"
	ClaimStatusProcessing = "processing"
	ClaimStatusApproved   = "approved"
	ClaimStatusDenied     = "denied"
	ClaimStatusPaid       = "paid"
	ClaimStatusWithdrawn  = "withdrawn"
	ClaimStatusRetracted  = "retracted"
)

// Withdrawal reasons accepted when a claim is pulled back before settlement.
const (
	WithdrawalReasonPatientSelfPay    = "patient_self_pay"
	WithdrawalReasonHospitalCancelled = "hospital_cancelled"
	WithdrawalReasonClaimError        = "claim_error"
	WithdrawalReasonTreatmentChanged  = "treatment_changed"
)

// claimTransitions is the full transition table. Withdrawal is the
// pre-settlement escape hatch, retraction the post-settlement one; nothing
// else may skip an intermediate state.
var claimTransitions = map[string][]string{
	ClaimStatusDraft:      {ClaimStatusSubmitted, ClaimStatusWithdrawn},
	ClaimStatusSubmitted:  {ClaimStatusProcessing, ClaimStatusWithdrawn},
	ClaimStatusProcessing: {ClaimStatusApproved, ClaimStatusDenied, ClaimStatusWithdrawn},
	ClaimStatusApproved:   {ClaimStatusPaid, ClaimStatusRetracted},
	ClaimStatusDenied:     {ClaimStatusSubmitted},
	ClaimStatusPaid:       {ClaimStatusRetracted},
}

// CanTransitionClaim reports whether from -> to is a legal claim transition.
func CanTransitionClaim(from, to string) bool {
	for _, next := range claimTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidWithdrawalReason reports whether the reason is in the accepted set.
func ValidWithdrawalReason(reason string) bool {
	switch reason {
	case WithdrawalReasonPatientSelfPay, WithdrawalReasonHospitalCancelled,
		WithdrawalReasonClaimError, WithdrawalReasonTreatmentChanged:
		return true
	}
	return false
}

// ClaimItem mirrors a bill item onto a claim, plus the clinical
// justification the insurer sees.
type ClaimItem struct {
	ID                     uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClaimID                string `gorm:"column:claim_id;not null;index" json:"claim_id"`
	BillItemID             uint   `gorm:"column:bill_item_id;not null" json:"bill_item_id"`
	Description            string `gorm:"column:description;not null" json:"description"`
	Category               string `gorm:"column:category;not null" json:"category"`
	Quantity               int64  `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice              int64  `gorm:"column:unit_price;not null" json:"unit_price"`
	Discount               int64  `gorm:"column:discount" json:"discount"`
	Total                  int64  `gorm:"column:total;not null" json:"total"`
	HMOCoveredAmount       int64  `gorm:"column:hmo_covered_amount" json:"hmo_covered_amount"`
	PatientLiabilityAmount int64  `gorm:"column:patient_liability_amount" json:"patient_liability_amount"`
	Diagnosis              string `gorm:"column:diagnosis" json:"diagnosis"`
	ClinicalJustification  string `gorm:"column:clinical_justification" json:"clinical_justification"`
	AuthorizationCode      string `gorm:"column:authorization_code" json:"authorization_code"`
	AuthorizationPending   bool   `gorm:"column:authorization_pending" json:"authorization_pending"`
}

func (ClaimItem) TableName() string {
	return "claim_item"
}

// ClaimVersion is one immutable entry in a claim's append-only history.
// PreviousValues snapshots every field the transition mutated, so any prior
// claim state can be reconstructed by replaying the list backwards.
type ClaimVersion struct {
	ID             uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClaimID        string          `gorm:"column:claim_id;not null;uniqueIndex:idx_claim_version" json:"claim_id"`
	Version        int             `gorm:"column:version;not null;uniqueIndex:idx_claim_version" json:"version"`
	Status         string          `gorm:"column:status;not null" json:"status"`
	ChangedAt      time.Time       `gorm:"column:changed_at;not null" json:"changed_at"`
	ChangedBy      string          `gorm:"column:changed_by;not null" json:"changed_by"`
	PreviousValues json.RawMessage `gorm:"column:previous_values;type:jsonb" json:"previous_values"`
}

func (ClaimVersion) TableName() string {
	return "claim_version"
}

// HMOClaim is the insurer-facing claim for one or more bills. Claims are
// never deleted: terminal states close the lifecycle but the record and its
// version history persist for audit.
type HMOClaim struct {
	ID                string         `gorm:"primaryKey;column:id" json:"id"`
	HMOProviderID     string         `gorm:"column:hmo_provider_id;not null;index" json:"hmo_provider_id"`
	EnrollmentID      string         `gorm:"column:enrollment_id;not null;index" json:"enrollment_id"`
	PatientID         string         `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Status            string         `gorm:"column:status;check:status IN ('draft', 'submitted', 'processing', 'approved', 'denied', 'paid', 'withdrawn', 'retracted');not null;index" json:"status"`
	CurrentVersion    int            `gorm:"column:current_version;not null" json:"current_version"`
	ClaimedAmount     int64          `gorm:"column:claimed_amount" json:"claimed_amount"`
	ApprovedAmount    int64          `gorm:"column:approved_amount" json:"approved_amount"`
	DenialReason      string         `gorm:"column:denial_reason" json:"denial_reason"`
	ResubmissionNotes string         `gorm:"column:resubmission_notes" json:"resubmission_notes"`
	WithdrawalReason  string         `gorm:"column:withdrawal_reason" json:"withdrawal_reason"`
	RetractionNotes   string         `gorm:"column:retraction_notes" json:"retraction_notes"`
	PrivateBillID     *string        `gorm:"column:private_bill_id" json:"private_bill_id"`
	PrivatePaymentID  *string        `gorm:"column:private_payment_id" json:"private_payment_id"`
	SubmittedAt       *time.Time     `gorm:"column:submitted_at" json:"submitted_at"`
	ProcessedAt       *time.Time     `gorm:"column:processed_at" json:"processed_at"`
	CreatedBy         string         `gorm:"column:created_by" json:"created_by"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	Bills             []Bill         `gorm:"many2many:claim_bills;foreignKey:ID;joinForeignKey:ClaimID;References:BillID;joinReferences:BillID" json:"bills"`
	Items             []ClaimItem    `gorm:"foreignKey:ClaimID;references:ID" json:"items"`
	Versions          []ClaimVersion `gorm:"foreignKey:ClaimID;references:ID" json:"versions"`
}

func (HMOClaim) TableName() string {
	return "hmo_claim"
}

// Terminal reports whether the claim's lifecycle is over. Paid is not
// terminal: a settled claim can still be retracted. Denied is not terminal
// either, since a denied claim can be resubmitted.
func (c *HMOClaim) Terminal() bool {
	return len(claimTransitions[c.Status]) == 0
}

// HistoryConsistent checks the audit invariant: one version row per
// increment, and the newest row agrees with the claim's current status.
func (c *HMOClaim) HistoryConsistent() bool {
	if len(c.Versions) != c.CurrentVersion {
		return false
	}
	if c.CurrentVersion == 0 {
		return false
	}
	return c.Versions[c.CurrentVersion-1].Status == c.Status
}
