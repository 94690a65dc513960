package utils

import (
	"HavenCare/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePaymentInput(t *testing.T) {
	valid := &models.Payment{BillID: "BL-1", CashierID: "u-1", Method: models.PaymentMethodCash, Amount: 5000}
	assert.NoError(t, ValidatePaymentInput(valid))

	zero := &models.Payment{BillID: "BL-1", CashierID: "u-1", Method: models.PaymentMethodCash, Amount: 0}
	assert.Error(t, ValidatePaymentInput(zero))

	negative := &models.Payment{BillID: "BL-1", CashierID: "u-1", Method: models.PaymentMethodCash, Amount: -5000}
	assert.Error(t, ValidatePaymentInput(negative))

	adjustment := &models.Payment{BillID: "BL-1", CashierID: "u-1", Method: models.PaymentMethodCash, Amount: -5000, IsAdjustment: true}
	assert.NoError(t, ValidatePaymentInput(adjustment))

	badMethod := &models.Payment{BillID: "BL-1", CashierID: "u-1", Method: "cheque", Amount: 5000}
	assert.Error(t, ValidatePaymentInput(badMethod))

	noBill := &models.Payment{CashierID: "u-1", Method: models.PaymentMethodCash, Amount: 5000}
	assert.Error(t, ValidatePaymentInput(noBill))
}

func TestValidateCoverageRule(t *testing.T) {
	full := &models.ServiceCoverage{HMOProviderID: "p-1", ServiceCategory: "consultation", CoverageType: models.CoverageTypeFull}
	assert.NoError(t, ValidateCoverageRule(full))

	percent := &models.ServiceCoverage{HMOProviderID: "p-1", ServiceCategory: "drugs", CoverageType: models.CoverageTypePartialPercent, CoveragePercentage: 80}
	assert.NoError(t, ValidateCoverageRule(percent))

	overPercent := &models.ServiceCoverage{HMOProviderID: "p-1", ServiceCategory: "drugs", CoverageType: models.CoverageTypePartialPercent, CoveragePercentage: 120}
	assert.Error(t, ValidateCoverageRule(overPercent))

	zeroPercent := &models.ServiceCoverage{HMOProviderID: "p-1", ServiceCategory: "drugs", CoverageType: models.CoverageTypePartialPercent}
	assert.Error(t, ValidateCoverageRule(zeroPercent))

	flatWithoutAmount := &models.ServiceCoverage{HMOProviderID: "p-1", ServiceCategory: "lab", CoverageType: models.CoverageTypePartialFlat}
	assert.Error(t, ValidateCoverageRule(flatWithoutAmount))

	badType := &models.ServiceCoverage{HMOProviderID: "p-1", ServiceCategory: "lab", CoverageType: "half"}
	assert.Error(t, ValidateCoverageRule(badType))

	missingProvider := &models.ServiceCoverage{ServiceCategory: "lab", CoverageType: models.CoverageTypeFull}
	assert.Error(t, ValidateCoverageRule(missingProvider))
}

func TestValidateBillInput(t *testing.T) {
	bill := &models.Bill{
		PatientID:    "pt-1",
		DepartmentID: "dept-1",
		Items: []models.BillItem{
			{Description: "Consultation", Category: "consultation", Quantity: 1, UnitPrice: 10000},
		},
	}
	assert.NoError(t, ValidateBillInput(bill))

	noItems := &models.Bill{PatientID: "pt-1", DepartmentID: "dept-1"}
	assert.Error(t, ValidateBillInput(noItems))

	badItem := &models.Bill{
		PatientID:    "pt-1",
		DepartmentID: "dept-1",
		Items:        []models.BillItem{{Description: "Consultation", Category: "consultation", Quantity: 0, UnitPrice: 10000}},
	}
	assert.Error(t, ValidateBillInput(badItem))
}
