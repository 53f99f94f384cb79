package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovista/agrodash/internal/models"
)

func TestProjectDebtServiceFloatingAdjustment(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	contracts := []models.DebtContract{
		{
			RateType:         models.RateTypeFloating,
			PrincipalBalance: 100000,
			InterestRate:     12,
			MaturityDate:     now.AddDate(10, 0, 0),
			Status:           models.ContractStatusActive,
		},
	}
	assumptions := models.ScenarioAssumptions{PolicyRate: ReferencePolicyRate + 2}

	total, avgRate := ProjectDebtService(contracts, assumptions, now)

	// rate shifted 12 -> 14: interest 14000, principal ~100000/120mo*12 = ~10000
	assert.Equal(t, 14.0, avgRate)
	require.InDelta(t, 24000, total, 150)
}

func TestProjectDebtServiceFixedUnaffected(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	contracts := []models.DebtContract{
		{
			RateType:         models.RateTypeFixed,
			PrincipalBalance: 200000,
			InterestRate:     9.5,
			MaturityDate:     now.AddDate(5, 0, 0),
			Status:           models.ContractStatusActive,
		},
	}

	baseline, baseRate := ProjectDebtService(contracts, models.ScenarioAssumptions{PolicyRate: ReferencePolicyRate}, now)
	stressed, stressRate := ProjectDebtService(contracts, models.ScenarioAssumptions{PolicyRate: ReferencePolicyRate + 5}, now)

	assert.Equal(t, baseline, stressed)
	assert.Equal(t, baseRate, stressRate)
	assert.Equal(t, 9.5, baseRate)
}

func TestProjectDebtServiceNearMaturity(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	contracts := []models.DebtContract{
		{
			RateType:         models.RateTypeFixed,
			PrincipalBalance: 50000,
			InterestRate:     10,
			MaturityDate:     now.AddDate(0, 0, 15),
			Status:           models.ContractStatusActive,
		},
	}

	total, _ := ProjectDebtService(contracts, models.ScenarioAssumptions{PolicyRate: ReferencePolicyRate}, now)

	// matures within the month: whole balance due plus 10% interest
	assert.Equal(t, 55000.0, total)
}

func TestProjectDebtServiceSkipsPaid(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	contracts := []models.DebtContract{
		{
			RateType:         models.RateTypeFixed,
			PrincipalBalance: 999999,
			InterestRate:     15,
			MaturityDate:     now.AddDate(1, 0, 0),
			Status:           models.ContractStatusPaid,
		},
	}

	total, avgRate := ProjectDebtService(contracts, models.ScenarioAssumptions{PolicyRate: ReferencePolicyRate}, now)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 0.0, avgRate)
}

func TestProjectDebtServiceEmpty(t *testing.T) {
	total, avgRate := ProjectDebtService(nil, models.ScenarioAssumptions{}, time.Now())
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 0.0, avgRate)
}

func TestSurvivalMonths(t *testing.T) {
	assert.Equal(t, 5, SurvivalMonths(100000, 50000, 30000))
	// floors the division
	assert.Equal(t, 3, SurvivalMonths(100, 0, 30))
	// zero or negative burn is capped at the sentinel
	assert.Equal(t, SurvivalMonthsCap, SurvivalMonths(100000, 0, 0))
	assert.Equal(t, SurvivalMonthsCap, SurvivalMonths(100000, 0, -500))
}
