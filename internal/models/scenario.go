package models

// ScenarioAssumptions is the macro input tuple for a stress projection
type ScenarioAssumptions struct {
	PolicyRate     float64 `json:"policy_rate" validate:"gte=0,lte=100"` // Selic, annual percent
	FXRate         float64 `json:"fx_rate" validate:"gte=0"`             // BRL per USD
	CommodityPrice float64 `json:"commodity_price" validate:"gte=0"`
	Production     float64 `json:"production" validate:"gte=0"`
	Costs          float64 `json:"costs" validate:"gte=0"`
}

// ScenarioResult is the derived output of a stress projection. Ephemeral,
// recomputed on demand, never persisted.
type ScenarioResult struct {
	TotalDebtService float64 `json:"total_debt_service"` // annual, BRL
	AverageRate      float64 `json:"average_rate"`
	DSCR             float64 `json:"dscr"`
	SurvivalMonths   int     `json:"survival_months"`
}
