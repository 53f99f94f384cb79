package models

// CashFlowTransaction is a single inflow or outflow
type CashFlowTransaction struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"` // Format: YYYY-MM-DD
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Institution string  `json:"institution"`
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"` // negative for outflows
	AmountBRL   float64 `json:"amount_brl"`
}

// CashFlowPeriod is one grouped bucket of a cash-flow report
type CashFlowPeriod struct {
	Period   string  `json:"period"` // YYYY-MM or ISO week start date
	Inflow   float64 `json:"inflow"`
	Outflow  float64 `json:"outflow"`
	Net      float64 `json:"net"`
	Balance  float64 `json:"balance"` // running balance
	Forecast bool    `json:"forecast"`
}

// CashFlowOverview summarizes the current cash position
type CashFlowOverview struct {
	CashBalance     float64          `json:"cash_balance"`
	AvailableCredit float64          `json:"available_credit"`
	MonthlyBurnRate float64          `json:"monthly_burn_rate"`
	Periods         []CashFlowPeriod `json:"periods"`
}

// CashFlowReportRequest carries the query filters of a report generation
type CashFlowReportRequest struct {
	From        string `json:"from" validate:"required"`
	To          string `json:"to" validate:"required"`
	GroupBy     string `json:"group_by" validate:"omitempty,oneof=week month"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
	Institution string `json:"institution"`
}
