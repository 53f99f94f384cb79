package finance

import "github.com/agrovista/agrodash/internal/models"

// covenantSeverity orders statuses for the worst-dominates reduction.
var covenantSeverity = map[string]int{
	models.CovenantStatusCompliant: 0,
	models.CovenantStatusWarning:   1,
	models.CovenantStatusBreach:    2,
}

// EvaluateCovenant classifies a covenant measurement against its required
// threshold. Minimum covenants (current must be >= required) are compliant
// at a ratio of 1.10 or better, in warning down to 1.00, breached below.
// Maximum covenants (current must be <= required) mirror at 0.90 and 1.00.
// A zero required value has nothing to measure against and is compliant.
func EvaluateCovenant(kind string, current, required float64) string {
	if required == 0 {
		return models.CovenantStatusCompliant
	}
	ratio := current / required

	if kind == models.CovenantKindMaximum {
		switch {
		case ratio <= 0.90:
			return models.CovenantStatusCompliant
		case ratio <= 1.00:
			return models.CovenantStatusWarning
		default:
			return models.CovenantStatusBreach
		}
	}

	// minimum covenants, and any unrecognized kind
	switch {
	case ratio >= 1.10:
		return models.CovenantStatusCompliant
	case ratio >= 1.00:
		return models.CovenantStatusWarning
	default:
		return models.CovenantStatusBreach
	}
}

// OverallStatus reduces individual covenant statuses to the portfolio-wide
// classification: breach dominates warning dominates compliant. An empty set
// is compliant.
func OverallStatus(statuses []string) string {
	overall := models.CovenantStatusCompliant
	for _, s := range statuses {
		if covenantSeverity[s] > covenantSeverity[overall] {
			overall = s
		}
	}
	return overall
}

// EvaluatePortfolio re-derives every covenant's status across the contract
// set and the aggregate classification. Stateless; called on each
// recomputation.
func EvaluatePortfolio(contracts []models.DebtContract) ([]models.ContractCovenant, string) {
	var evaluated []models.ContractCovenant
	var statuses []string
	for _, c := range contracts {
		for _, cov := range c.Covenants {
			cov.Status = EvaluateCovenant(cov.Kind, cov.Current, cov.Required)
			evaluated = append(evaluated, cov)
			statuses = append(statuses, cov.Status)
		}
	}
	return evaluated, OverallStatus(statuses)
}
