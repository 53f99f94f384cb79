package service

import (
	"time"

	"github.com/agrovista/agrodash/internal/finance"
	"github.com/agrovista/agrodash/internal/models"
)

// RunScenario recomputes the portfolio's debt service under hypothetical
// macro assumptions and derives the stressed DSCR and survival months.
// Results are ephemeral and never persisted.
func (s *Service) RunScenario(a models.ScenarioAssumptions) (*models.ScenarioResult, error) {
	contracts, err := s.repo.ListContracts(false)
	if err != nil {
		return nil, err
	}
	fin, err := s.repo.GetFinancials()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	baseline, _ := finance.ProjectDebtService(contracts, models.ScenarioAssumptions{PolicyRate: finance.ReferencePolicyRate}, now)
	stressed, avgRate := finance.ProjectDebtService(contracts, a, now)

	// scenario EBITDA from the commodity assumptions when supplied,
	// otherwise the recorded figure
	ebitda := fin.EBITDA
	if a.CommodityPrice > 0 && a.Production > 0 {
		ebitda = a.CommodityPrice*a.Production - a.Costs
	}

	// extra debt service raises the monthly burn in the liquidity view
	monthlyBurn := fin.MonthlyBurn + (stressed-baseline)/12

	result := &models.ScenarioResult{
		TotalDebtService: stressed,
		AverageRate:      avgRate,
		DSCR:             finance.DSCR(ebitda, stressed),
		SurvivalMonths:   finance.SurvivalMonths(fin.CashBalance, fin.AvailableCredit, monthlyBurn),
	}

	s.log.Infof("Scenario run: policy=%.2f fx=%.2f service=%.2f dscr=%.2f survival=%dmo",
		a.PolicyRate, a.FXRate, result.TotalDebtService, result.DSCR, result.SurvivalMonths)
	return result, nil
}
