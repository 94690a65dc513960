package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionClaim(t *testing.T) {
	valid := []struct{ from, to string }{
		{ClaimStatusDraft, ClaimStatusSubmitted},
		{ClaimStatusDraft, ClaimStatusWithdrawn},
		{ClaimStatusSubmitted, ClaimStatusProcessing},
		{ClaimStatusSubmitted, ClaimStatusWithdrawn},
		{ClaimStatusProcessing, ClaimStatusApproved},
		{ClaimStatusProcessing, ClaimStatusDenied},
		{ClaimStatusProcessing, ClaimStatusWithdrawn},
		{ClaimStatusApproved, ClaimStatusPaid},
		{ClaimStatusApproved, ClaimStatusRetracted},
		{ClaimStatusDenied, ClaimStatusSubmitted},
		{ClaimStatusPaid, ClaimStatusRetracted},
	}
	for _, tc := range valid {
		assert.True(t, CanTransitionClaim(tc.from, tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	invalid := []struct{ from, to string }{
		{ClaimStatusDraft, ClaimStatusApproved},
		{ClaimStatusDraft, ClaimStatusPaid},
		{ClaimStatusSubmitted, ClaimStatusApproved},
		{ClaimStatusApproved, ClaimStatusDenied},
		{ClaimStatusApproved, ClaimStatusWithdrawn},
		{ClaimStatusDenied, ClaimStatusApproved},
		{ClaimStatusPaid, ClaimStatusWithdrawn},
		{ClaimStatusWithdrawn, ClaimStatusSubmitted},
		{ClaimStatusRetracted, ClaimStatusSubmitted},
		{ClaimStatusPaid, ClaimStatusPaid},
		{"", ClaimStatusSubmitted},
	}
	for _, tc := range invalid {
		assert.False(t, CanTransitionClaim(tc.from, tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestClaimTerminal(t *testing.T) {
	assert.True(t, (&HMOClaim{Status: ClaimStatusWithdrawn}).Terminal())
	assert.True(t, (&HMOClaim{Status: ClaimStatusRetracted}).Terminal())

	// Paid claims can still be retracted, denied claims resubmitted.
	assert.False(t, (&HMOClaim{Status: ClaimStatusPaid}).Terminal())
	assert.False(t, (&HMOClaim{Status: ClaimStatusDenied}).Terminal())
	assert.False(t, (&HMOClaim{Status: ClaimStatusDraft}).Terminal())
}

func TestValidWithdrawalReason(t *testing.T) {
	assert.True(t, ValidWithdrawalReason(WithdrawalReasonPatientSelfPay))
	assert.True(t, ValidWithdrawalReason(WithdrawalReasonHospitalCancelled))
	assert.True(t, ValidWithdrawalReason(WithdrawalReasonClaimError))
	assert.True(t, ValidWithdrawalReason(WithdrawalReasonTreatmentChanged))

	assert.False(t, ValidWithdrawalReason(""))
	assert.False(t, ValidWithdrawalReason("changed_my_mind"))
}

func TestHistoryConsistent(t *testing.T) {
	now := time.Now()

	claim := &HMOClaim{
		Status:         ClaimStatusSubmitted,
		CurrentVersion: 2,
		Versions: []ClaimVersion{
			{Version: 1, Status: ClaimStatusDraft, ChangedAt: now},
			{Version: 2, Status: ClaimStatusSubmitted, ChangedAt: now},
		},
	}
	assert.True(t, claim.HistoryConsistent())

	// A missing version row breaks the invariant.
	claim.Versions = claim.Versions[:1]
	assert.False(t, claim.HistoryConsistent())

	// So does a newest row that disagrees with the claim status.
	claim.Versions = []ClaimVersion{
		{Version: 1, Status: ClaimStatusDraft, ChangedAt: now},
		{Version: 2, Status: ClaimStatusProcessing, ChangedAt: now},
	}
	assert.False(t, claim.HistoryConsistent())

	// A claim with no history at all is inconsistent; creation writes v1.
	empty := &HMOClaim{Status: ClaimStatusDraft, CurrentVersion: 0}
	assert.False(t, empty.HistoryConsistent())
}
