package services

import (
	"HavenCare/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateShiftStats_GroupsByMethod(t *testing.T) {
	payments := []models.Payment{
		{Amount: 50000, Method: models.PaymentMethodCash},
		{Amount: 30000, Method: models.PaymentMethodCash},
		{Amount: 120000, Method: models.PaymentMethodCard},
		{Amount: 200000, Method: models.PaymentMethodHMO},
	}

	stats := CalculateShiftStats("shift-1", payments, nil)

	assert.Equal(t, "shift-1", stats.ShiftID)
	assert.Equal(t, 4, stats.TransactionCount)
	assert.Equal(t, int64(400000), stats.GrandTotal)
	assert.Equal(t, int64(80000), stats.TotalsByMethod[models.PaymentMethodCash])
	assert.Equal(t, int64(120000), stats.TotalsByMethod[models.PaymentMethodCard])
	assert.Equal(t, int64(200000), stats.TotalsByMethod[models.PaymentMethodHMO])
	assert.Nil(t, stats.CountedCash)
	assert.Nil(t, stats.CashVariance)
}

func TestCalculateShiftStats_Empty(t *testing.T) {
	stats := CalculateShiftStats("shift-1", nil, nil)

	assert.Equal(t, 0, stats.TransactionCount)
	assert.Equal(t, int64(0), stats.GrandTotal)
	assert.Empty(t, stats.TotalsByMethod)
}

func TestCalculateShiftStats_CashVariance(t *testing.T) {
	payments := []models.Payment{
		{Amount: 50000, Method: models.PaymentMethodCash},
		{Amount: 100000, Method: models.PaymentMethodCard},
	}
	counted := int64(48500)

	stats := CalculateShiftStats("shift-2", payments, &counted)

	assert.Equal(t, int64(48500), *stats.CountedCash)
	// Drawer is short by 1500 kobo.
	assert.Equal(t, int64(-1500), *stats.CashVariance)
}

func TestCalculateShiftStats_VarianceWithNoCashPayments(t *testing.T) {
	payments := []models.Payment{
		{Amount: 100000, Method: models.PaymentMethodTransfer},
	}
	counted := int64(2000)

	stats := CalculateShiftStats("shift-3", payments, &counted)

	// Any counted cash with no recorded cash payments is pure overage.
	assert.Equal(t, int64(2000), *stats.CashVariance)
}

func TestCalculateShiftStats_AdjustmentsNetOut(t *testing.T) {
	payments := []models.Payment{
		{Amount: 50000, Method: models.PaymentMethodCash},
		{Amount: -20000, Method: models.PaymentMethodCash, IsAdjustment: true},
	}

	stats := CalculateShiftStats("shift-4", payments, nil)

	assert.Equal(t, int64(30000), stats.TotalsByMethod[models.PaymentMethodCash])
	assert.Equal(t, int64(30000), stats.GrandTotal)
	assert.Equal(t, 2, stats.TransactionCount)
}

func TestCalculateShiftStats_Deterministic(t *testing.T) {
	payments := []models.Payment{
		{Amount: 12345, Method: models.PaymentMethodCash},
		{Amount: 67890, Method: models.PaymentMethodCard},
	}
	counted := int64(12345)

	first := CalculateShiftStats("shift-5", payments, &counted)
	second := CalculateShiftStats("shift-5", payments, &counted)

	assert.Equal(t, first.TotalsByMethod, second.TotalsByMethod)
	assert.Equal(t, first.GrandTotal, second.GrandTotal)
	assert.Equal(t, *first.CashVariance, *second.CashVariance)
}
