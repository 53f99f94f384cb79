package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovista/agrodash/internal/models"
)

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	require.NoError(t, err)
	return &d
}

func TestBuildPeriodsMonthly(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.CashFlowTransaction{
		{Date: "2026-03-05", AmountBRL: 120000},
		{Date: "2026-03-20", AmountBRL: -30000},
		{Date: "2026-04-02", AmountBRL: 80000},
	}
	payments := []models.DebtPayment{
		{DueDate: datePtr(t, "2026-04-10"), AmountBRL: 25000},
	}

	periods := buildPeriods(txs, payments, "month", 500000, now)
	require.Len(t, periods, 2)

	assert.Equal(t, "2026-03", periods[0].Period)
	assert.Equal(t, 120000.0, periods[0].Inflow)
	assert.Equal(t, 30000.0, periods[0].Outflow)
	assert.Equal(t, 90000.0, periods[0].Net)
	assert.Equal(t, 590000.0, periods[0].Balance)
	assert.False(t, periods[0].Forecast)

	assert.Equal(t, "2026-04", periods[1].Period)
	assert.Equal(t, 80000.0, periods[1].Inflow)
	assert.Equal(t, 25000.0, periods[1].Outflow)
	assert.Equal(t, 645000.0, periods[1].Balance)
	assert.True(t, periods[1].Forecast)
}

func TestBuildPeriodsWeeklyBucketsOnMonday(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	txs := []models.CashFlowTransaction{
		{Date: "2026-03-04", AmountBRL: 1000}, // Wednesday
		{Date: "2026-03-08", AmountBRL: 500},  // Sunday, same ISO week
		{Date: "2026-03-09", AmountBRL: 200},  // next Monday
	}

	periods := buildPeriods(txs, nil, "week", 0, now)
	require.Len(t, periods, 2)
	assert.Equal(t, "2026-03-02", periods[0].Period)
	assert.Equal(t, 1500.0, periods[0].Inflow)
	assert.Equal(t, "2026-03-09", periods[1].Period)
	assert.True(t, periods[1].Forecast)
}

func TestBuildPeriodsPaymentFallsBackToTotalAmount(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	payments := []models.DebtPayment{
		{DueDate: datePtr(t, "2026-01-15"), TotalAmount: 9000},
		{DueDate: nil, AmountBRL: 4000}, // no due date, skipped
	}

	periods := buildPeriods(nil, payments, "month", 0, now)
	require.Len(t, periods, 1)
	assert.Equal(t, 9000.0, periods[0].Outflow)
}

func TestFilterPayments(t *testing.T) {
	payments := []models.DebtPayment{
		{ContractNumber: "AGR-1", Currency: "BRL", Institution: "Banco do Brasil"},
		{ContractNumber: "AGR-2", Currency: "USD", Institution: "Rabobank"},
		{ContractNumber: "AGR-3", Currency: "BRL", Institution: "Rabobank"},
	}

	byCurrency := filterPayments(append([]models.DebtPayment(nil), payments...), "BRL", "")
	require.Len(t, byCurrency, 2)

	both := filterPayments(append([]models.DebtPayment(nil), payments...), "BRL", "Rabobank")
	require.Len(t, both, 1)
	assert.Equal(t, "AGR-3", both[0].ContractNumber)
}
