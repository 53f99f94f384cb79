package models

import "time"

// Payment statuses. Status is inferred from the due date alone (the import
// format carries no settlement confirmation), so every imported record also
// carries StatusSource so a future confirmation feed can be told apart.
const (
	PaymentStatusPending = "pending"
	PaymentStatusOverdue = "overdue"

	StatusSourceInferred  = "inferred"
	StatusSourceConfirmed = "confirmed"
)

// DebtPayment is one scheduled installment of a contract, normalized from
// the semicolon-delimited import format. Immutable once normalized; re-import
// upserts by (contract_number, installment_number, due_date).
type DebtPayment struct {
	ID                int64      `json:"id"`
	ContractNumber    string     `json:"contract_number"`
	Institution       string     `json:"institution"`
	InstallmentNumber int        `json:"installment_number"`
	InstallmentTotal  int        `json:"installment_total"`
	DueDate           *time.Time `json:"due_date"`
	Currency          string     `json:"currency"`
	PrincipalAmount   float64    `json:"principal_amount"`
	InterestAmount    float64    `json:"interest_amount"`
	TotalAmount       float64    `json:"total_amount"`
	RemainingBalance  float64    `json:"remaining_balance"`
	InterestRate      *float64   `json:"interest_rate,omitempty"` // annual, percent
	RolledOver        bool       `json:"rolled_over"`
	ExchangeRate      *float64   `json:"exchange_rate,omitempty"`
	AmountBRL         float64    `json:"amount_brl"`
	DocumentID        string     `json:"document_id"`
	Status            string     `json:"status"`
	StatusSource      string     `json:"status_source"`
	Backfilled        bool       `json:"backfilled"` // synthesized by the backfill estimator, not ingested
	RawLine           string     `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
