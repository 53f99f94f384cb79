package service

import (
	"time"

	"github.com/agrovista/agrodash/internal/finance"
	"github.com/agrovista/agrodash/internal/fx"
	"github.com/agrovista/agrodash/internal/models"
)

// shortTermWindowMonths bounds what counts as short-term debt for the
// liquidity ratio.
const shortTermWindowMonths = 12

// conversionRates resolves the rate table for portfolio aggregation. Live or
// cached rates are preferred; when none are available the static fallback
// table is applied here, explicitly, and logged.
func (s *Service) conversionRates() map[string]float64 {
	rates, err := s.rates.CurrentRates()
	if err != nil {
		s.log.Warnf("Exchange rates unavailable, using fallback table: %v", err)
		return fx.FallbackRates()
	}
	return rates
}

// toBRLFunc builds the conversion closure handed to the calculators. A
// currency missing from the live table degrades to the fallback table; one
// missing from both is counted at face value and logged loudly.
func (s *Service) toBRLFunc(rates map[string]float64) finance.ConvertFunc {
	return func(amount float64, currency string) float64 {
		v, err := fx.ConvertWith(rates, amount, currency, "BRL")
		if err == nil {
			return v
		}
		v, err = fx.ConvertWith(fx.FallbackRates(), amount, currency, "BRL")
		if err == nil {
			s.log.Warnf("Currency %s missing from live rates, converted via fallback table", currency)
			return v
		}
		s.log.Errorf("Unsupported currency %s, amount counted at face value", currency)
		return amount
	}
}

// Rates reports the conversion table currently in use and where it came from
func (s *Service) Rates() (map[string]float64, string) {
	rates, err := s.rates.CurrentRates()
	if err != nil {
		s.log.Warnf("Exchange rates unavailable, reporting fallback table: %v", err)
		return fx.FallbackRates(), "fallback"
	}
	return rates, "live"
}

// DebtPosition assembles the aggregate debt portfolio view. Covenant current
// values for the portfolio-level ratios are re-derived before evaluation.
func (s *Service) DebtPosition(includeHistory bool) (*models.DebtPosition, error) {
	contracts, err := s.repo.ListContracts(includeHistory)
	if err != nil {
		return nil, err
	}
	fin, err := s.repo.GetFinancials()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	toBRL := s.toBRLFunc(s.conversionRates())

	exposures := finance.CurrencyExposures(contracts, toBRL)
	var totalBRL float64
	for _, e := range exposures {
		totalBRL += e.BalanceBRL
	}

	// baseline debt service: scenario projection at the reference policy rate
	debtService, _ := finance.ProjectDebtService(contracts, models.ScenarioAssumptions{PolicyRate: finance.ReferencePolicyRate}, now)

	var shortTermBRL, fxExposureBRL, collateralValue, securedBRL float64
	for _, c := range contracts {
		balanceBRL := toBRL(c.PrincipalBalance, c.Currency)
		if finance.WithinMonths(now, c.MaturityDate, shortTermWindowMonths) {
			shortTermBRL += balanceBRL
		}
		if c.Currency != "BRL" {
			fxExposureBRL += balanceBRL
		}
		if c.CollateralValue > 0 {
			collateralValue += c.CollateralValue
			securedBRL += balanceBRL
		}
	}

	position := &models.DebtPosition{
		TotalDebtBRL:        totalBRL,
		WeightedAverageRate: finance.WeightedAverageRate(contracts),
		AverageMaturity:     finance.WeightedAverageMaturityMonths(contracts, now),
		DSCR:                finance.DSCR(fin.EBITDA, debtService),
		DebtToEBITDA:        finance.DebtToEBITDA(totalBRL, fin.EBITDA),
		LiquidityRatio:      finance.LiquidityRatio(fin.CashBalance, shortTermBRL),
		CollateralCoverage:  finance.CollateralCoverage(collateralValue, securedBRL),
		ValueAtRisk:         finance.ValueAtRisk(fxExposureBRL, fin.FXVolatility, s.config.VaRConfidence),
		Exposures:           exposures,
	}

	refreshCovenantCurrents(contracts, map[string]float64{
		"dscr":                position.DSCR,
		"debt_ebitda":         position.DebtToEBITDA,
		"liquidity":           position.LiquidityRatio,
		"collateral_coverage": position.CollateralCoverage,
	})
	_, position.CovenantStatus = finance.EvaluatePortfolio(contracts)

	if includeHistory {
		position.Contracts = contracts
	}
	return position, nil
}

// CovenantReport re-evaluates every covenant across the portfolio
func (s *Service) CovenantReport() ([]models.ContractCovenant, string, error) {
	position, err := s.DebtPosition(false)
	if err != nil {
		return nil, "", err
	}
	contracts, err := s.repo.ListContracts(false)
	if err != nil {
		return nil, "", err
	}
	refreshCovenantCurrents(contracts, map[string]float64{
		"dscr":                position.DSCR,
		"debt_ebitda":         position.DebtToEBITDA,
		"liquidity":           position.LiquidityRatio,
		"collateral_coverage": position.CollateralCoverage,
	})
	evaluated, overall := finance.EvaluatePortfolio(contracts)
	return evaluated, overall, nil
}

// refreshCovenantCurrents updates covenant current values that track the
// portfolio-level ratios. Covenants with unrecognized names keep their
// stored measurements.
func refreshCovenantCurrents(contracts []models.DebtContract, metrics map[string]float64) {
	for i := range contracts {
		for j := range contracts[i].Covenants {
			if v, ok := metrics[contracts[i].Covenants[j].Name]; ok {
				contracts[i].Covenants[j].Current = v
			}
		}
	}
}
