package models

import (
	"time"
)

// Payment methods.
const (
	PaymentMethodCash      = "cash"
	PaymentMethodCard      = "card"
	PaymentMethodTransfer  = "transfer"
	PaymentMethodHMO       = "hmo"
	PaymentMethodCorporate = "corporate"
)

// Cashier shift statuses.
const (
	ShiftStatusActive = "active"
	ShiftStatusClosed = "closed"
)

// Payment is one settlement split against a bill. Rows are immutable once
// recorded; corrections are new adjustment entries with negative amounts,
// never edits.
type Payment struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	BillID        string    `gorm:"column:bill_id;not null;index" json:"bill_id"`
	ShiftID       *string   `gorm:"column:shift_id;index" json:"shift_id"`
	ClaimID       *string   `gorm:"column:claim_id;index" json:"claim_id"`
	Amount        int64     `gorm:"column:amount;not null" json:"amount"`
	Method        string    `gorm:"column:method;check:method IN ('cash', 'card', 'transfer', 'hmo', 'corporate');not null" json:"method"`
	Reference     string    `gorm:"column:reference" json:"reference"`
	BankName      string    `gorm:"column:bank_name" json:"bank_name"`
	HMOProviderID *string   `gorm:"column:hmo_provider_id" json:"hmo_provider_id"`
	CashierID     string    `gorm:"column:cashier_id;not null;index" json:"cashier_id"`
	IsAdjustment  bool      `gorm:"column:is_adjustment" json:"is_adjustment"`
	RecordedAt    time.Time `gorm:"column:recorded_at;autoCreateTime;index" json:"recorded_at"`
}

func (Payment) TableName() string {
	return "payment"
}

// ValidPaymentMethod reports whether the method is in the accepted set.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer,
		PaymentMethodHMO, PaymentMethodCorporate:
		return true
	}
	return false
}

// CashierShift groups the payments a cashier records at one station between
// opening and closing. Payments reference the shift; the shift does not
// contain them.
type CashierShift struct {
	ID           string     `gorm:"primaryKey;column:id" json:"id"`
	Station      string     `gorm:"column:station;not null" json:"station"`
	CashierID    string     `gorm:"column:cashier_id;not null;index" json:"cashier_id"`
	Status       string     `gorm:"column:status;check:status IN ('active', 'closed');not null;index" json:"status"`
	OpenedAt     time.Time  `gorm:"column:opened_at;not null" json:"opened_at"`
	ClosedAt     *time.Time `gorm:"column:closed_at" json:"closed_at"`
	CountedCash  *int64     `gorm:"column:counted_cash" json:"counted_cash"`
	CashVariance *int64     `gorm:"column:cash_variance" json:"cash_variance"`
}

func (CashierShift) TableName() string {
	return "cashier_shift"
}

// ShiftStats is the reconciliation summary for one shift. It is always
// recomputable from the payment list alone; the persisted copy on a closed
// shift is a convenience snapshot.
type ShiftStats struct {
	ShiftID          string           `json:"shift_id"`
	TotalsByMethod   map[string]int64 `json:"totals_by_method"`
	TransactionCount int              `json:"transaction_count"`
	GrandTotal       int64            `json:"grand_total"`
	CountedCash      *int64           `json:"counted_cash"`
	CashVariance     *int64           `json:"cash_variance"`
}
