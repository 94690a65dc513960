package services

import (
	"HavenCare/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleBill_Totals(t *testing.T) {
	items := []models.BillItem{
		{Description: "Consultation", Category: "consultation", Quantity: 1, UnitPrice: 500000,
			HMOStatus: models.HMOStatusCovered, HMOCoveredAmount: 500000, PatientLiabilityAmount: 0},
		{Description: "Paracetamol", Category: "drugs", Quantity: 2, UnitPrice: 10000, Discount: 2000,
			HMOStatus: models.HMOStatusPartial, HMOCoveredAmount: 14400, PatientLiabilityAmount: 3600},
	}

	bill, err := AssembleBill(items, 5000, 1000)
	require.NoError(t, err)

	assert.Equal(t, int64(518000), bill.Subtotal)
	assert.Equal(t, int64(514000), bill.Total) // subtotal - discount + tax
	assert.Equal(t, int64(0), bill.AmountPaid)
	assert.Equal(t, bill.Total, bill.Balance)
	assert.Equal(t, int64(514400), bill.HMOTotalCoverage)
	assert.Equal(t, int64(3600), bill.PatientTotalLiability)
	assert.Equal(t, models.BillStatusPending, bill.Status)
}

func TestAssembleBill_RecomputesItemTotals(t *testing.T) {
	items := []models.BillItem{
		// Total deliberately wrong on input; the assembler must not trust it.
		{Description: "X-ray", Category: "imaging", Quantity: 3, UnitPrice: 10000, Total: 1},
	}

	bill, err := AssembleBill(items, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(30000), bill.Items[0].Total)
	assert.Equal(t, int64(30000), bill.Subtotal)
}

func TestAssembleBill_RejectsEmptyItems(t *testing.T) {
	_, err := AssembleBill(nil, 0, 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAssembleBill_RejectsNegativeItemTotal(t *testing.T) {
	items := []models.BillItem{
		{Description: "Bandage", Category: "consumables", Quantity: 1, UnitPrice: 1000, Discount: 5000},
	}
	_, err := AssembleBill(items, 0, 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAssembleBill_RejectsDiscountExceedingSubtotal(t *testing.T) {
	items := []models.BillItem{
		{Description: "Consultation", Category: "consultation", Quantity: 1, UnitPrice: 10000},
	}
	_, err := AssembleBill(items, 20000, 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAssembleBill_RejectsNegativeDiscountAndTax(t *testing.T) {
	items := []models.BillItem{
		{Description: "Consultation", Category: "consultation", Quantity: 1, UnitPrice: 10000},
	}
	_, err := AssembleBill(items, -1, 0)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = AssembleBill(items, 0, -1)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAssembleBill_RejectsUnbalancedSplit(t *testing.T) {
	items := []models.BillItem{
		{Description: "Drugs", Category: "drugs", Quantity: 1, UnitPrice: 10000,
			HMOStatus: models.HMOStatusPartial, HMOCoveredAmount: 5000, PatientLiabilityAmount: 1000},
	}
	_, err := AssembleBill(items, 0, 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAssembleBill_AllowsOneKoboRoundingSlack(t *testing.T) {
	items := []models.BillItem{
		{Description: "Lab", Category: "lab", Quantity: 1, UnitPrice: 101,
			HMOStatus: models.HMOStatusPartial, HMOCoveredAmount: 33, PatientLiabilityAmount: 67},
	}
	_, err := AssembleBill(items, 0, 0)
	assert.NoError(t, err)
}

func TestAssembleBill_ZeroDiscountZeroTax(t *testing.T) {
	items := []models.BillItem{
		{Description: "Consultation", Category: "consultation", Quantity: 1, UnitPrice: 10000},
	}
	bill, err := AssembleBill(items, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, bill.Subtotal, bill.Total)
}
