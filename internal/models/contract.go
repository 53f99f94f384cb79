package models

import "time"

// Contract lifecycle statuses. Contracts are never deleted, only
// transitioned between these states.
const (
	ContractStatusActive  = "active"
	ContractStatusGrace   = "grace"
	ContractStatusDefault = "default"
	ContractStatusPaid    = "paid"
)

// Rate types. Floating contracts are indexed to the policy rate (Selic)
// and are the only ones adjusted by scenario projections.
const (
	RateTypeFixed    = "fixed"
	RateTypeFloating = "floating"
)

// DebtContract represents a financial obligation with a lending institution
type DebtContract struct {
	ID                int64              `json:"id"`
	ContractNumber    string             `json:"contract_number"`
	Institution       string             `json:"institution"`
	Currency          string             `json:"currency"`
	PrincipalBalance  float64            `json:"principal_balance"`
	RateType          string             `json:"rate_type"`
	InterestRate      float64            `json:"interest_rate"` // annual, percent
	DisbursementDate  time.Time          `json:"disbursement_date"`
	MaturityDate      time.Time          `json:"maturity_date"`
	NextPaymentDate   *time.Time         `json:"next_payment_date,omitempty"`
	NextPaymentAmount float64            `json:"next_payment_amount"`
	Collateral        string             `json:"collateral"`
	CollateralValue   float64            `json:"collateral_value"`
	Covenants         []ContractCovenant `json:"covenants,omitempty"`
	Status            string             `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// Covenant kinds: a minimum covenant requires current >= required,
// a maximum covenant requires current <= required.
const (
	CovenantKindMinimum = "minimum"
	CovenantKindMaximum = "maximum"
)

// Covenant compliance classifications
const (
	CovenantStatusCompliant = "compliant"
	CovenantStatusWarning   = "warning"
	CovenantStatusBreach    = "breach"
)

// ContractCovenant is a contractual financial threshold attached to a contract
type ContractCovenant struct {
	ID         int64   `json:"id"`
	ContractID int64   `json:"contract_id"`
	Name       string  `json:"name"` // e.g. DSCR, debt_ebitda, liquidity, collateral_coverage
	Kind       string  `json:"kind"` // minimum or maximum
	Required   float64 `json:"required"`
	Current    float64 `json:"current"`
	Status     string  `json:"status"`
}
