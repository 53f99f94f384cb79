package models

// CompanyFinancials is the single-row snapshot of the enterprise's
// operating figures used by ratio calculations. Seeded with simulated data
// until a real accounting integration exists.
type CompanyFinancials struct {
	EBITDA          float64 `json:"ebitda"`
	CashBalance     float64 `json:"cash_balance"`
	AvailableCredit float64 `json:"available_credit"`
	MonthlyBurn     float64 `json:"monthly_burn"`
	FXVolatility    float64 `json:"fx_volatility"`
}
