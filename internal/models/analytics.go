package models

// CurrencyExposure represents debt concentration in one currency
type CurrencyExposure struct {
	Currency   string  `json:"currency"`
	Balance    float64 `json:"balance"`     // in original currency
	BalanceBRL float64 `json:"balance_brl"` // converted
	Percentage float64 `json:"percentage"`  // of total converted debt
}

// DebtPosition represents the aggregate debt portfolio view
type DebtPosition struct {
	TotalDebtBRL        float64            `json:"total_debt_brl"`
	WeightedAverageRate float64            `json:"weighted_average_rate"`
	AverageMaturity     int                `json:"average_maturity_months"`
	DSCR                float64            `json:"dscr"`
	DebtToEBITDA        float64            `json:"debt_to_ebitda"`
	LiquidityRatio      float64            `json:"liquidity_ratio"`
	CollateralCoverage  float64            `json:"collateral_coverage"`
	ValueAtRisk         float64            `json:"value_at_risk"`
	Exposures           []CurrencyExposure `json:"exposures"`
	CovenantStatus      string             `json:"covenant_status"`
	Contracts           []DebtContract     `json:"contracts,omitempty"`
}
