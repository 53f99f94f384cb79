// Package finance provides the pure debt-portfolio calculators used by the
// dashboard: coverage ratios, weighted aggregates, currency exposure,
// value-at-risk and covenant classification. All functions are deterministic
// and free of I/O; rounding happens only at the output boundary.
package finance

import (
	"math"
	"sort"
	"time"

	"github.com/agrovista/agrodash/internal/models"
)

// daysPerMonth is the mean Gregorian month length used for maturity math.
const daysPerMonth = 30.44

// round2 rounds a value to two decimals. Applied at output boundaries only;
// intermediate computation keeps full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DSCR computes the debt service coverage ratio (EBITDA / debt service).
// Returns 0 when debt service is 0. This conflates "no debt" with "zero
// coverage" and is kept on purpose to match the dashboard's behavior.
func DSCR(ebitda, debtService float64) float64 {
	if debtService == 0 {
		return 0
	}
	return round2(ebitda / debtService)
}

// DebtToEBITDA computes the leverage indicator total debt / EBITDA.
// Returns 0 when EBITDA is 0.
func DebtToEBITDA(totalDebt, ebitda float64) float64 {
	if ebitda == 0 {
		return 0
	}
	return round2(totalDebt / ebitda)
}

// WeightedAverageRate computes the balance-weighted average interest rate
// across contracts. Returns 0 when the total balance is 0.
func WeightedAverageRate(contracts []models.DebtContract) float64 {
	var total, weighted float64
	for _, c := range contracts {
		total += c.PrincipalBalance
		weighted += c.PrincipalBalance * c.InterestRate
	}
	if total == 0 {
		return 0
	}
	return round2(weighted / total)
}

// WeightedAverageMaturityMonths computes the balance-weighted average number
// of months until maturity, rounded to whole months. Contracts already past
// maturity contribute 0 months. Returns 0 when the total balance is 0.
func WeightedAverageMaturityMonths(contracts []models.DebtContract, now time.Time) int {
	var total, weighted float64
	for _, c := range contracts {
		total += c.PrincipalBalance
		weighted += c.PrincipalBalance * monthsUntil(now, c.MaturityDate)
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(weighted / total))
}

// monthsUntil returns the fractional number of months between two instants,
// never negative.
func monthsUntil(from, to time.Time) float64 {
	if !to.After(from) {
		return 0
	}
	return to.Sub(from).Hours() / 24 / daysPerMonth
}

// WithinMonths reports whether maturity falls within n months of now.
// Already-matured contracts count as within any window.
func WithinMonths(now, maturity time.Time, n int) bool {
	return monthsUntil(now, maturity) <= float64(n)
}

// ConvertFunc converts an amount in the given currency to BRL. Callers decide
// how unsupported currencies degrade (fallback table or error) before
// handing the function in; the calculators stay pure.
type ConvertFunc func(amount float64, currency string) float64

// CurrencyExposures sums contract balances by currency, converts each to BRL
// and expresses it as a percentage of total converted debt. Results are
// sorted by converted balance descending. Percentages sum to at most 100.
func CurrencyExposures(contracts []models.DebtContract, toBRL ConvertFunc) []models.CurrencyExposure {
	byCurrency := make(map[string]float64)
	for _, c := range contracts {
		byCurrency[c.Currency] += c.PrincipalBalance
	}

	var totalBRL float64
	exposures := make([]models.CurrencyExposure, 0, len(byCurrency))
	for currency, balance := range byCurrency {
		converted := toBRL(balance, currency)
		totalBRL += converted
		exposures = append(exposures, models.CurrencyExposure{
			Currency:   currency,
			Balance:    round2(balance),
			BalanceBRL: round2(converted),
		})
	}

	for i := range exposures {
		if totalBRL > 0 {
			exposures[i].Percentage = round2(exposures[i].BalanceBRL / totalBRL * 100)
		}
	}

	sort.Slice(exposures, func(i, j int) bool {
		return exposures[i].BalanceBRL > exposures[j].BalanceBRL
	})
	return exposures
}

// zScores maps confidence levels to one-tailed normal z-scores.
var zScores = map[int]float64{
	90: 1.28,
	95: 1.65,
	99: 2.33,
}

// ValueAtRisk estimates the potential loss on an exposure at the given
// confidence level (exposure x volatility x z-score). Unrecognized
// confidence levels use the 95% z-score.
func ValueAtRisk(exposure, volatility float64, confidence int) float64 {
	z, ok := zScores[confidence]
	if !ok {
		z = zScores[95]
	}
	return round2(exposure * volatility * z)
}

// LiquidityRatio computes cash / short-term debt. Returns 0 when short-term
// debt is 0.
func LiquidityRatio(cash, shortTermDebt float64) float64 {
	if shortTermDebt == 0 {
		return 0
	}
	return round2(cash / shortTermDebt)
}

// CollateralCoverage computes collateral value / secured debt. Returns 0
// when secured debt is 0.
func CollateralCoverage(collateralValue, securedDebt float64) float64 {
	if securedDebt == 0 {
		return 0
	}
	return round2(collateralValue / securedDebt)
}
