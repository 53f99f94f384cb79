package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrovista/agrodash/internal/models"
)

func TestEvaluateCovenantMinimum(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		required float64
		expected string
	}{
		{"ratio 1.10 is compliant", 1.10, 1.00, models.CovenantStatusCompliant},
		{"ratio above 1.10 is compliant", 1.50, 1.00, models.CovenantStatusCompliant},
		{"ratio 1.00 is warning", 1.00, 1.00, models.CovenantStatusWarning},
		{"ratio 1.05 is warning", 1.05, 1.00, models.CovenantStatusWarning},
		{"ratio 0.95 is breach", 0.95, 1.00, models.CovenantStatusBreach},
		{"zero current is breach", 0, 1.25, models.CovenantStatusBreach},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCovenant(models.CovenantKindMinimum, tt.current, tt.required)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEvaluateCovenantMaximum(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		required float64
		expected string
	}{
		{"ratio 0.90 is compliant", 2.70, 3.00, models.CovenantStatusCompliant},
		{"ratio 1.00 is warning", 3.00, 3.00, models.CovenantStatusWarning},
		{"ratio 1.05 is breach", 3.15, 3.00, models.CovenantStatusBreach},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCovenant(models.CovenantKindMaximum, tt.current, tt.required)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEvaluateCovenantZeroRequired(t *testing.T) {
	assert.Equal(t, models.CovenantStatusCompliant,
		EvaluateCovenant(models.CovenantKindMinimum, 1.2, 0))
}

func TestOverallStatusLattice(t *testing.T) {
	compliant := models.CovenantStatusCompliant
	warning := models.CovenantStatusWarning
	breach := models.CovenantStatusBreach

	assert.Equal(t, compliant, OverallStatus(nil))
	assert.Equal(t, compliant, OverallStatus([]string{compliant, compliant}))
	assert.Equal(t, warning, OverallStatus([]string{compliant, warning, compliant}))
	assert.Equal(t, breach, OverallStatus([]string{warning, breach, compliant}))
	// breach dominates regardless of position
	assert.Equal(t, breach, OverallStatus([]string{breach, compliant, warning}))
}

func TestEvaluatePortfolio(t *testing.T) {
	contracts := []models.DebtContract{
		{
			ContractNumber: "AGR-001",
			Covenants: []models.ContractCovenant{
				{Name: "dscr", Kind: models.CovenantKindMinimum, Required: 1.25, Current: 1.60},
				{Name: "debt_ebitda", Kind: models.CovenantKindMaximum, Required: 3.00, Current: 3.00},
			},
		},
		{
			ContractNumber: "AGR-002",
			Covenants: []models.ContractCovenant{
				{Name: "liquidity", Kind: models.CovenantKindMinimum, Required: 1.20, Current: 0.90},
			},
		},
	}

	evaluated, overall := EvaluatePortfolio(contracts)

	assert.Len(t, evaluated, 3)
	assert.Equal(t, models.CovenantStatusCompliant, evaluated[0].Status)
	assert.Equal(t, models.CovenantStatusWarning, evaluated[1].Status)
	assert.Equal(t, models.CovenantStatusBreach, evaluated[2].Status)
	assert.Equal(t, models.CovenantStatusBreach, overall)

	// source contracts are not mutated
	assert.Empty(t, contracts[0].Covenants[0].Status)
}
