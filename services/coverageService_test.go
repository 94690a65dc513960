package services

import (
	"HavenCare/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hmoPayer() PayerContext {
	return PayerContext{PayerType: models.PayerTypeHMO, HMOProviderID: "prov-1"}
}

func TestResolveItemCoverage_FullCoverage(t *testing.T) {
	item := models.BillItem{Category: "consultation", Quantity: 1, UnitPrice: 500000, Total: 500000}
	rule := &models.ServiceCoverage{ID: "rule-1", CoverageType: models.CoverageTypeFull}

	ResolveItemCoverage(&item, hmoPayer(), rule)

	assert.Equal(t, models.HMOStatusCovered, item.HMOStatus)
	assert.Equal(t, int64(500000), item.HMOCoveredAmount)
	assert.Equal(t, int64(0), item.PatientLiabilityAmount)
	assert.Equal(t, "rule-1", *item.HMOServiceCoverageID)
	assert.True(t, item.SplitBalances())
}

func TestResolveItemCoverage_PartialPercent(t *testing.T) {
	item := models.BillItem{Category: "drugs", Total: 10000}
	rule := &models.ServiceCoverage{ID: "rule-2", CoverageType: models.CoverageTypePartialPercent, CoveragePercentage: 80}

	ResolveItemCoverage(&item, hmoPayer(), rule)

	assert.Equal(t, models.HMOStatusPartial, item.HMOStatus)
	assert.Equal(t, int64(8000), item.HMOCoveredAmount)
	assert.Equal(t, int64(2000), item.PatientLiabilityAmount)
}

func TestResolveItemCoverage_PercentRoundingFavorsPatientLiability(t *testing.T) {
	// 33% of 101 kobo is 33.33; the insurer share rounds down and the
	// remainder stays with the patient.
	item := models.BillItem{Category: "lab", Total: 101}
	rule := &models.ServiceCoverage{ID: "rule-3", CoverageType: models.CoverageTypePartialPercent, CoveragePercentage: 33}

	ResolveItemCoverage(&item, hmoPayer(), rule)

	assert.Equal(t, int64(33), item.HMOCoveredAmount)
	assert.Equal(t, int64(68), item.PatientLiabilityAmount)
	assert.Equal(t, item.Total, item.HMOCoveredAmount+item.PatientLiabilityAmount)
}

func TestResolveItemCoverage_FlatAmountCappedAtTotal(t *testing.T) {
	item := models.BillItem{Category: "drugs", Total: 3000}
	rule := &models.ServiceCoverage{ID: "rule-4", CoverageType: models.CoverageTypePartialFlat, CoverageFlatAmount: 5000}

	ResolveItemCoverage(&item, hmoPayer(), rule)

	assert.Equal(t, models.HMOStatusCovered, item.HMOStatus)
	assert.Equal(t, int64(3000), item.HMOCoveredAmount)
	assert.Equal(t, int64(0), item.PatientLiabilityAmount)
}

func TestResolveItemCoverage_MaxCoveredAmountCap(t *testing.T) {
	maxCovered := int64(4000)
	item := models.BillItem{Category: "surgery", Total: 100000}
	rule := &models.ServiceCoverage{
		ID:                 "rule-5",
		CoverageType:       models.CoverageTypePartialPercent,
		CoveragePercentage: 90,
		MaxCoveredAmount:   &maxCovered,
	}

	ResolveItemCoverage(&item, hmoPayer(), rule)

	assert.Equal(t, int64(4000), item.HMOCoveredAmount)
	assert.Equal(t, int64(96000), item.PatientLiabilityAmount)
	assert.Equal(t, models.HMOStatusPartial, item.HMOStatus)
}

func TestResolveItemCoverage_NoneCoverageType(t *testing.T) {
	item := models.BillItem{Category: "cosmetic", Total: 25000}
	rule := &models.ServiceCoverage{ID: "rule-6", CoverageType: models.CoverageTypeNone}

	ResolveItemCoverage(&item, hmoPayer(), rule)

	assert.Equal(t, models.HMOStatusNotCovered, item.HMOStatus)
	assert.Equal(t, int64(0), item.HMOCoveredAmount)
	assert.Equal(t, int64(25000), item.PatientLiabilityAmount)
	assert.Equal(t, "rule-6", *item.HMOServiceCoverageID)
}

func TestResolveItemCoverage_NoRuleFailsClosed(t *testing.T) {
	item := models.BillItem{Category: "new_procedure", Total: 50000}

	ResolveItemCoverage(&item, hmoPayer(), nil)

	assert.Equal(t, models.HMOStatusNotCovered, item.HMOStatus)
	assert.Equal(t, int64(0), item.HMOCoveredAmount)
	assert.Equal(t, int64(50000), item.PatientLiabilityAmount)
	assert.Nil(t, item.HMOServiceCoverageID)
}

func TestResolveItemCoverage_CashPayer(t *testing.T) {
	item := models.BillItem{Category: "consultation", Total: 20000}
	payer := PayerContext{PayerType: models.PayerTypeCash}
	rule := &models.ServiceCoverage{ID: "rule-1", CoverageType: models.CoverageTypeFull}

	ResolveItemCoverage(&item, payer, rule)

	assert.Equal(t, models.HMOStatusNotCovered, item.HMOStatus)
	assert.Equal(t, int64(20000), item.PatientLiabilityAmount)
	assert.Nil(t, item.HMOServiceCoverageID)
}

func TestResolveItemCoverage_OptedOutItem(t *testing.T) {
	item := models.BillItem{Category: "drugs", Total: 15000, IsOptedOutOfHMO: true}
	rule := &models.ServiceCoverage{ID: "rule-2", CoverageType: models.CoverageTypeFull}

	ResolveItemCoverage(&item, hmoPayer(), rule)

	assert.Equal(t, models.HMOStatusOptedOut, item.HMOStatus)
	assert.Equal(t, int64(0), item.HMOCoveredAmount)
	assert.Equal(t, int64(15000), item.PatientLiabilityAmount)
}

func TestResolveItemCoverage_PreAuthPending(t *testing.T) {
	item := models.BillItem{Category: "mri", Total: 80000}
	rule := &models.ServiceCoverage{ID: "rule-7", CoverageType: models.CoverageTypeFull, RequiresPreAuth: true}

	ResolveItemCoverage(&item, hmoPayer(), rule)

	assert.Equal(t, models.HMOStatusNotCovered, item.HMOStatus)
	assert.True(t, item.AuthorizationPending)
	assert.Equal(t, int64(0), item.HMOCoveredAmount)
	assert.Equal(t, int64(80000), item.PatientLiabilityAmount)
	// The rule stays referenced so the item can be re-resolved later.
	assert.Equal(t, "rule-7", *item.HMOServiceCoverageID)
}

func TestResolveItemCoverage_PreAuthWithCode(t *testing.T) {
	item := models.BillItem{Category: "mri", Total: 80000}
	payer := hmoPayer()
	payer.PreAuthCode = "AUTH-991"
	rule := &models.ServiceCoverage{ID: "rule-7", CoverageType: models.CoverageTypeFull, RequiresPreAuth: true}

	ResolveItemCoverage(&item, payer, rule)

	assert.Equal(t, models.HMOStatusCovered, item.HMOStatus)
	assert.False(t, item.AuthorizationPending)
	assert.Equal(t, int64(80000), item.HMOCoveredAmount)
}

func TestResolveItemCoverage_PreAuthWithEmergencyOverride(t *testing.T) {
	item := models.BillItem{Category: "surgery", Total: 200000}
	payer := hmoPayer()
	payer.HasOverride = true
	rule := &models.ServiceCoverage{ID: "rule-8", CoverageType: models.CoverageTypePartialPercent, CoveragePercentage: 50, RequiresPreAuth: true}

	ResolveItemCoverage(&item, payer, rule)

	assert.False(t, item.AuthorizationPending)
	assert.Equal(t, int64(100000), item.HMOCoveredAmount)
	assert.Equal(t, int64(100000), item.PatientLiabilityAmount)
}

func TestResolveItemCoverage_ClearsStaleResolution(t *testing.T) {
	// Re-resolving an item must not leak amounts from a previous pass.
	item := models.BillItem{
		Category:               "drugs",
		Total:                  10000,
		HMOCoveredAmount:       9999,
		PatientLiabilityAmount: 1,
		AuthorizationPending:   true,
	}

	ResolveItemCoverage(&item, PayerContext{PayerType: models.PayerTypeCash}, nil)

	assert.Equal(t, int64(0), item.HMOCoveredAmount)
	assert.Equal(t, int64(10000), item.PatientLiabilityAmount)
	assert.False(t, item.AuthorizationPending)
}
