package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillDeriveStatus(t *testing.T) {
	bill := &Bill{Total: 100000, Status: BillStatusPending}

	assert.Equal(t, BillStatusPending, bill.DeriveStatus())

	bill.AmountPaid = 40000
	assert.Equal(t, BillStatusPartial, bill.DeriveStatus())

	bill.AmountPaid = 100000
	assert.Equal(t, BillStatusPaid, bill.DeriveStatus())

	// Terminal overrides are never recomputed away.
	bill.Status = BillStatusWaived
	bill.AmountPaid = 0
	assert.Equal(t, BillStatusWaived, bill.DeriveStatus())

	bill.Status = BillStatusRefunded
	assert.Equal(t, BillStatusRefunded, bill.DeriveStatus())
}

func TestBillIsClosed(t *testing.T) {
	assert.True(t, (&Bill{Status: BillStatusWaived}).IsClosed())
	assert.True(t, (&Bill{Status: BillStatusRefunded}).IsClosed())
	assert.False(t, (&Bill{Status: BillStatusPaid}).IsClosed())
	assert.False(t, (&Bill{Status: BillStatusPending}).IsClosed())
}

func TestBillItemSplitBalances(t *testing.T) {
	// Unresolved items carry no split to check.
	assert.True(t, (&BillItem{Total: 100}).SplitBalances())

	exact := &BillItem{Total: 100, HMOStatus: HMOStatusPartial, HMOCoveredAmount: 60, PatientLiabilityAmount: 40}
	assert.True(t, exact.SplitBalances())

	offByOne := &BillItem{Total: 101, HMOStatus: HMOStatusPartial, HMOCoveredAmount: 33, PatientLiabilityAmount: 67}
	assert.True(t, offByOne.SplitBalances())

	offByTwo := &BillItem{Total: 102, HMOStatus: HMOStatusPartial, HMOCoveredAmount: 33, PatientLiabilityAmount: 67}
	assert.False(t, offByTwo.SplitBalances())

	overSplit := &BillItem{Total: 100, HMOStatus: HMOStatusCovered, HMOCoveredAmount: 100, PatientLiabilityAmount: 100}
	assert.False(t, overSplit.SplitBalances())
}

func TestBillingCodeRedeemable(t *testing.T) {
	now := time.Now()

	live := &BillingCode{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, live.Redeemable(now))

	expired := &BillingCode{ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.Redeemable(now))

	redeemedAt := now.Add(-time.Hour)
	spent := &BillingCode{ExpiresAt: now.Add(time.Hour), RedeemedAt: &redeemedAt}
	assert.False(t, spent.Redeemable(now))

	// A code expiring this exact instant is already dead.
	boundary := &BillingCode{ExpiresAt: now}
	assert.False(t, boundary.Redeemable(now))
}

func TestEmergencyOverrideInForce(t *testing.T) {
	now := time.Now()

	active := &EmergencyOverride{IsActive: true, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, active.InForce(now))

	expired := &EmergencyOverride{IsActive: true, ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.InForce(now))

	revoked := &EmergencyOverride{IsActive: false, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, revoked.InForce(now))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, method := range []string{PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodHMO, PaymentMethodCorporate} {
		assert.True(t, ValidPaymentMethod(method))
	}
	assert.False(t, ValidPaymentMethod("cheque"))
	assert.False(t, ValidPaymentMethod(""))
}
