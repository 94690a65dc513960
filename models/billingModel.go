package models

import (
	"time"
)

// All monetary amounts in this package are int64 minor units (kobo).

// Coverage types supported by HMO service coverage rules.
const (
	CoverageTypeFull           = "full"
	CoverageTypePartialPercent = "partial_percent"
	CoverageTypePartialFlat    = "partial_flat"
	CoverageTypeNone           = "none"
)

// Per-item HMO resolution outcomes.
const (
	HMOStatusCovered    = "covered"
	HMOStatusPartial    = "partial"
	HMOStatusNotCovered = "not_covered"
	HMOStatusOptedOut   = "opted_out"
)

// Bill statuses. Waived and refunded are explicit terminal overrides; the
// rest are derived from amountPaid vs total.
const (
	BillStatusPending  = "pending"
	BillStatusPartial  = "partial"
	BillStatusPaid     = "paid"
	BillStatusWaived   = "waived"
	BillStatusRefunded = "refunded"
)

// Payer types.
const (
	PayerTypeCash      = "cash"
	PayerTypeHMO       = "hmo"
	PayerTypeCorporate = "corporate"
)

// ServiceCoverage is an HMO provider's reimbursement rule for one service
// category. Rules referenced by resolved bill items are never edited in
// place; a supersede writes a new row and deactivates the old one so
// historical bills keep pointing at the rule that priced them.
type ServiceCoverage struct {
	ID                 string    `gorm:"primaryKey;column:id" json:"id"`
	HMOProviderID      string    `gorm:"column:hmo_provider_id;not null;index:idx_provider_category" json:"hmo_provider_id"`
	ServiceCategory    string    `gorm:"column:service_category;not null;index:idx_provider_category" json:"service_category"`
	CoverageType       string    `gorm:"column:coverage_type;check:coverage_type IN ('full', 'partial_percent', 'partial_flat', 'none');not null" json:"coverage_type"`
	CoveragePercentage int64     `gorm:"column:coverage_percentage" json:"coverage_percentage"`
	CoverageFlatAmount int64     `gorm:"column:coverage_flat_amount" json:"coverage_flat_amount"`
	MaxCoveredAmount   *int64    `gorm:"column:max_covered_amount" json:"max_covered_amount"`
	RequiresPreAuth    bool      `gorm:"column:requires_pre_auth;not null" json:"requires_pre_auth"`
	IsActive           bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	UpdatedBy          string    `gorm:"column:updated_by" json:"updated_by"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ServiceCoverage) TableName() string {
	return "service_coverage"
}

// BillItem is one priced service or drug line on a bill. The HMO fields are
// filled by the coverage resolver before the bill is assembled.
type BillItem struct {
	ID                     uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BillID                 string  `gorm:"column:bill_id;index" json:"bill_id"`
	Description            string  `gorm:"column:description;not null" json:"description"`
	Category               string  `gorm:"column:category;not null;index" json:"category"`
	Quantity               int64   `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice              int64   `gorm:"column:unit_price;not null" json:"unit_price"`
	Discount               int64   `gorm:"column:discount" json:"discount"`
	Total                  int64   `gorm:"column:total;not null" json:"total"`
	HMOStatus              string  `gorm:"column:hmo_status;check:hmo_status IN ('covered', 'partial', 'not_covered', 'opted_out', '')" json:"hmo_status"`
	HMOCoveredAmount       int64   `gorm:"column:hmo_covered_amount" json:"hmo_covered_amount"`
	PatientLiabilityAmount int64   `gorm:"column:patient_liability_amount" json:"patient_liability_amount"`
	HMOServiceCoverageID   *string `gorm:"column:hmo_service_coverage_id" json:"hmo_service_coverage_id"`
	IsOptedOutOfHMO        bool    `gorm:"column:is_opted_out_of_hmo" json:"is_opted_out_of_hmo"`
	AuthorizationPending   bool    `gorm:"column:authorization_pending" json:"authorization_pending"`
}

func (BillItem) TableName() string {
	return "bill_item"
}

// SplitBalances reports whether the item's payer/patient split adds back up
// to its total, within one minor unit of rounding slack.
func (i *BillItem) SplitBalances() bool {
	if i.HMOStatus == "" {
		return true
	}
	diff := i.Total - (i.HMOCoveredAmount + i.PatientLiabilityAmount)
	return diff >= -1 && diff <= 1
}

// Bill aggregates resolved items for one patient and department.
// Total = subtotal - discount + tax; balance = total - amountPaid.
// AmountPaid and Balance are mutated only through payment recording.
type Bill struct {
	BillID                string     `gorm:"primaryKey;column:bill_id" json:"bill_id"`
	PatientID             string     `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DepartmentID          string     `gorm:"column:department_id;not null;index" json:"department_id"`
	EpisodeID             *string    `gorm:"column:episode_id" json:"episode_id"`
	ClaimID               *string    `gorm:"column:claim_id;index" json:"claim_id"`
	Subtotal              int64      `gorm:"column:subtotal;not null" json:"subtotal"`
	Discount              int64      `gorm:"column:discount" json:"discount"`
	Tax                   int64      `gorm:"column:tax" json:"tax"`
	Total                 int64      `gorm:"column:total;not null" json:"total"`
	AmountPaid            int64      `gorm:"column:amount_paid" json:"amount_paid"`
	Balance               int64      `gorm:"column:balance" json:"balance"`
	HMOTotalCoverage      int64      `gorm:"column:hmo_total_coverage" json:"hmo_total_coverage"`
	PatientTotalLiability int64      `gorm:"column:patient_total_liability" json:"patient_total_liability"`
	Status                string     `gorm:"column:status;check:status IN ('pending', 'partial', 'paid', 'waived', 'refunded');not null;index" json:"status"`
	CreatedBy             string     `gorm:"column:created_by" json:"created_by"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	Items                 []BillItem `gorm:"foreignKey:BillID;references:BillID" json:"items"`
	Patient               Patient    `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Department            Department `gorm:"foreignKey:DepartmentID;references:ID" json:"-"`
}

func (Bill) TableName() string {
	return "bill"
}

// IsClosed reports whether the bill is in a terminal override state and can
// no longer accept payments.
func (b *Bill) IsClosed() bool {
	return b.Status == BillStatusWaived || b.Status == BillStatusRefunded
}

// DeriveStatus recomputes the pending/partial/paid status from the payment
// position. Terminal overrides are left alone.
func (b *Bill) DeriveStatus() string {
	if b.IsClosed() {
		return b.Status
	}
	switch {
	case b.AmountPaid <= 0:
		return BillStatusPending
	case b.AmountPaid < b.Total:
		return BillStatusPartial
	default:
		return BillStatusPaid
	}
}

// BillingCode is the audit row for a deferred-payment code. The live entry
// with its TTL sits in redis; this row is what validity is judged against so
// a redis flush cannot resurrect or invalidate a code.
type BillingCode struct {
	Code       string     `gorm:"primaryKey;column:code" json:"code"`
	BillID     string     `gorm:"column:bill_id;not null;index" json:"bill_id"`
	PatientID  string     `gorm:"column:patient_id;not null;index" json:"patient_id"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	RedeemedAt *time.Time `gorm:"column:redeemed_at" json:"redeemed_at"`
	RedeemedBy string     `gorm:"column:redeemed_by" json:"redeemed_by"`
}

func (BillingCode) TableName() string {
	return "billing_code"
}

// Redeemable reports whether the code can still authorize a payment at the
// given instant.
func (c *BillingCode) Redeemable(now time.Time) bool {
	return c.RedeemedAt == nil && now.Before(c.ExpiresAt)
}

// EmergencyOverride lifts pre-authorization gating for one patient. At most
// one active override per patient at a time.
type EmergencyOverride struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Reason    string    `gorm:"column:reason;not null" json:"reason"`
	IsActive  bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	GrantedBy string    `gorm:"column:granted_by" json:"granted_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (EmergencyOverride) TableName() string {
	return "emergency_override"
}

// InForce reports whether the override is active and unexpired.
func (o *EmergencyOverride) InForce(now time.Time) bool {
	return o.IsActive && now.Before(o.ExpiresAt)
}
