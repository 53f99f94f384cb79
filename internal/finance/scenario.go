package finance

import (
	"math"
	"time"

	"github.com/agrovista/agrodash/internal/models"
)

// ReferencePolicyRate is the baseline Selic rate the portfolio was priced
// against. Floating-rate contracts are adjusted by the delta between a
// scenario's assumed policy rate and this reference.
const ReferencePolicyRate = 11.25

// SurvivalMonthsCap is returned when the burn rate is zero or negative.
const SurvivalMonthsCap = 999

// ProjectDebtService recomputes the annual debt service of the portfolio
// under the given macro assumptions. Floating contracts get their rate
// shifted by the policy-rate delta; the principal component amortizes the
// balance evenly over the remaining months to maturity, annualized. Returns
// the total annual debt service in contract currency terms and the
// balance-weighted average adjusted rate.
func ProjectDebtService(contracts []models.DebtContract, a models.ScenarioAssumptions, now time.Time) (totalService, averageRate float64) {
	var totalBalance, weightedRate float64
	for _, c := range contracts {
		if c.Status == models.ContractStatusPaid {
			continue
		}

		rate := c.InterestRate
		if c.RateType == models.RateTypeFloating {
			rate += a.PolicyRate - ReferencePolicyRate
		}

		interest := rate / 100 * c.PrincipalBalance

		months := monthsUntil(now, c.MaturityDate)
		var principal float64
		if months < 1 {
			// matures within the month, the whole balance is due
			principal = c.PrincipalBalance
		} else {
			principal = c.PrincipalBalance / months * 12
		}

		totalService += interest + principal
		totalBalance += c.PrincipalBalance
		weightedRate += c.PrincipalBalance * rate
	}

	if totalBalance > 0 {
		averageRate = round2(weightedRate / totalBalance)
	}
	return round2(totalService), averageRate
}

// SurvivalMonths estimates how many months the operation can run on cash
// plus available credit lines at the given monthly burn rate. Capped at
// SurvivalMonthsCap when the burn rate is zero or negative.
func SurvivalMonths(cash, creditLines, monthlyBurn float64) int {
	if monthlyBurn <= 0 {
		return SurvivalMonthsCap
	}
	return int(math.Floor((cash + creditLines) / monthlyBurn))
}
