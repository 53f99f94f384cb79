package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/agrovista/agrodash/internal/models"
)

// UpsertChunkSize is how many payment rows are written per batch. Chunks
// commit independently: a mid-batch failure leaves earlier chunks in place.
const UpsertChunkSize = 100

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateContract creates a new debt contract with its covenants
func (r *Repository) CreateContract(c *models.DebtContract) error {
	query := `
		INSERT INTO debt_contracts (contract_number, institution, currency, principal_balance,
			rate_type, interest_rate, disbursement_date, maturity_date,
			next_payment_date, next_payment_amount, collateral, collateral_value, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		c.ContractNumber, c.Institution, c.Currency, c.PrincipalBalance,
		c.RateType, c.InterestRate, c.DisbursementDate, c.MaturityDate,
		c.NextPaymentDate, c.NextPaymentAmount, c.Collateral, c.CollateralValue, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	if len(c.Covenants) > 0 {
		if err := r.ReplaceCovenants(c.ID, c.Covenants); err != nil {
			return err
		}
	}
	return nil
}

// UpdateContractStatus transitions a contract's lifecycle status. Contracts
// are never deleted.
func (r *Repository) UpdateContractStatus(id int64, status string) error {
	res, err := r.db.Exec(`
		UPDATE debt_contracts
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update contract status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("contract %d not found", id)
	}
	return nil
}

// ListContracts retrieves contracts with their covenants. Paid contracts are
// excluded unless includeSettled is set.
func (r *Repository) ListContracts(includeSettled bool) ([]models.DebtContract, error) {
	query := `
		SELECT id, contract_number, institution, currency, principal_balance,
			rate_type, interest_rate, disbursement_date, maturity_date,
			next_payment_date, next_payment_amount, collateral, collateral_value,
			status, created_at, updated_at
		FROM debt_contracts`
	if !includeSettled {
		query += ` WHERE status <> 'paid'`
	}
	query += ` ORDER BY maturity_date`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []models.DebtContract
	for rows.Next() {
		var c models.DebtContract
		if err := rows.Scan(&c.ID, &c.ContractNumber, &c.Institution, &c.Currency, &c.PrincipalBalance,
			&c.RateType, &c.InterestRate, &c.DisbursementDate, &c.MaturityDate,
			&c.NextPaymentDate, &c.NextPaymentAmount, &c.Collateral, &c.CollateralValue,
			&c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contracts: %w", err)
	}

	for i := range contracts {
		covenants, err := r.listCovenants(contracts[i].ID)
		if err != nil {
			return nil, err
		}
		contracts[i].Covenants = covenants
	}
	return contracts, nil
}

func (r *Repository) listCovenants(contractID int64) ([]models.ContractCovenant, error) {
	rows, err := r.db.Query(`
		SELECT id, contract_id, name, kind, required, current, status
		FROM contract_covenants
		WHERE contract_id = $1
		ORDER BY name`, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list covenants: %w", err)
	}
	defer rows.Close()

	var covenants []models.ContractCovenant
	for rows.Next() {
		var cov models.ContractCovenant
		if err := rows.Scan(&cov.ID, &cov.ContractID, &cov.Name, &cov.Kind, &cov.Required, &cov.Current, &cov.Status); err != nil {
			return nil, fmt.Errorf("failed to scan covenant: %w", err)
		}
		covenants = append(covenants, cov)
	}
	return covenants, rows.Err()
}

// ReplaceCovenants swaps a contract's covenant set
func (r *Repository) ReplaceCovenants(contractID int64, covenants []models.ContractCovenant) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin covenant replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM contract_covenants WHERE contract_id = $1`, contractID); err != nil {
		return fmt.Errorf("failed to clear covenants: %w", err)
	}
	for _, cov := range covenants {
		if _, err := tx.Exec(`
			INSERT INTO contract_covenants (contract_id, name, kind, required, current, status)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			contractID, cov.Name, cov.Kind, cov.Required, cov.Current, cov.Status); err != nil {
			return fmt.Errorf("failed to insert covenant %s: %w", cov.Name, err)
		}
	}
	return tx.Commit()
}

// UpsertPayments writes normalized payment records in sequential chunks,
// keyed by (contract_number, installment_number, due_date). Returns how many
// rows were written; on failure the rows of already-committed chunks stay
// committed. Backfilled records never overwrite ingested ones.
func (r *Repository) UpsertPayments(payments []models.DebtPayment) (int, error) {
	written := 0
	for start := 0; start < len(payments); start += UpsertChunkSize {
		end := start + UpsertChunkSize
		if end > len(payments) {
			end = len(payments)
		}
		n, err := r.upsertChunk(payments[start:end])
		written += n
		if err != nil {
			return written, fmt.Errorf("payment upsert failed after %d rows: %w", written, err)
		}
	}
	return written, nil
}

func (r *Repository) upsertChunk(chunk []models.DebtPayment) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin upsert chunk: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO debt_payments (contract_number, institution, installment_number, installment_total,
			due_date, currency, principal_amount, interest_amount, total_amount, remaining_balance,
			interest_rate, rolled_over, exchange_rate, amount_brl, document_id,
			status, status_source, backfilled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (contract_number, installment_number, due_date) DO UPDATE SET
			institution = EXCLUDED.institution,
			currency = EXCLUDED.currency,
			principal_amount = EXCLUDED.principal_amount,
			interest_amount = EXCLUDED.interest_amount,
			total_amount = EXCLUDED.total_amount,
			remaining_balance = EXCLUDED.remaining_balance,
			interest_rate = EXCLUDED.interest_rate,
			rolled_over = EXCLUDED.rolled_over,
			exchange_rate = EXCLUDED.exchange_rate,
			amount_brl = EXCLUDED.amount_brl,
			document_id = EXCLUDED.document_id,
			status = EXCLUDED.status,
			status_source = EXCLUDED.status_source,
			backfilled = EXCLUDED.backfilled,
			updated_at = CURRENT_TIMESTAMP
		WHERE debt_payments.backfilled OR NOT EXCLUDED.backfilled`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range chunk {
		if _, err := stmt.Exec(
			p.ContractNumber, p.Institution, p.InstallmentNumber, p.InstallmentTotal,
			p.DueDate, p.Currency, p.PrincipalAmount, p.InterestAmount, p.TotalAmount, p.RemainingBalance,
			p.InterestRate, p.RolledOver, p.ExchangeRate, p.AmountBRL, p.DocumentID,
			p.Status, p.StatusSource, p.Backfilled); err != nil {
			return 0, fmt.Errorf("failed to upsert payment %s/%d: %w", p.ContractNumber, p.InstallmentNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit upsert chunk: %w", err)
	}
	return len(chunk), nil
}

// ListPaymentsDueBetween retrieves payments with a due date inside the range
func (r *Repository) ListPaymentsDueBetween(from, to time.Time) ([]models.DebtPayment, error) {
	rows, err := r.db.Query(`
		SELECT id, contract_number, institution, installment_number, installment_total,
			due_date, currency, principal_amount, interest_amount, total_amount, remaining_balance,
			interest_rate, rolled_over, exchange_rate, amount_brl, document_id,
			status, status_source, backfilled, created_at, updated_at
		FROM debt_payments
		WHERE due_date >= $1 AND due_date <= $2
		ORDER BY due_date, contract_number`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.DebtPayment
	for rows.Next() {
		var p models.DebtPayment
		if err := rows.Scan(&p.ID, &p.ContractNumber, &p.Institution, &p.InstallmentNumber, &p.InstallmentTotal,
			&p.DueDate, &p.Currency, &p.PrincipalAmount, &p.InterestAmount, &p.TotalAmount, &p.RemainingBalance,
			&p.InterestRate, &p.RolledOver, &p.ExchangeRate, &p.AmountBRL, &p.DocumentID,
			&p.Status, &p.StatusSource, &p.Backfilled, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ListOverduePayments retrieves non-backfilled payments already past due
func (r *Repository) ListOverduePayments(asOf time.Time) ([]models.DebtPayment, error) {
	rows, err := r.db.Query(`
		SELECT id, contract_number, institution, installment_number, installment_total,
			due_date, currency, principal_amount, interest_amount, total_amount, remaining_balance,
			interest_rate, rolled_over, exchange_rate, amount_brl, document_id,
			status, status_source, backfilled, created_at, updated_at
		FROM debt_payments
		WHERE status = $1 AND backfilled = FALSE AND due_date < $2
		ORDER BY due_date`, models.PaymentStatusOverdue, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue payments: %w", err)
	}
	defer rows.Close()

	var payments []models.DebtPayment
	for rows.Next() {
		var p models.DebtPayment
		if err := rows.Scan(&p.ID, &p.ContractNumber, &p.Institution, &p.InstallmentNumber, &p.InstallmentTotal,
			&p.DueDate, &p.Currency, &p.PrincipalAmount, &p.InterestAmount, &p.TotalAmount, &p.RemainingBalance,
			&p.InterestRate, &p.RolledOver, &p.ExchangeRate, &p.AmountBRL, &p.DocumentID,
			&p.Status, &p.StatusSource, &p.Backfilled, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ListTransactions retrieves cash-flow transactions inside a date range,
// optionally filtered by currency and institution.
func (r *Repository) ListTransactions(from, to time.Time, currency, institution string) ([]models.CashFlowTransaction, error) {
	query := `
		SELECT id, date, description, category, institution, currency, amount, amount_brl
		FROM cash_flow_transactions
		WHERE date >= $1 AND date <= $2`
	args := []interface{}{from, to}
	if currency != "" {
		args = append(args, currency)
		query += fmt.Sprintf(" AND currency = $%d", len(args))
	}
	if institution != "" {
		args = append(args, institution)
		query += fmt.Sprintf(" AND institution = $%d", len(args))
	}
	query += " ORDER BY date"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.CashFlowTransaction
	for rows.Next() {
		var t models.CashFlowTransaction
		var date time.Time
		if err := rows.Scan(&t.ID, &date, &t.Description, &t.Category, &t.Institution, &t.Currency, &t.Amount, &t.AmountBRL); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Date = date.Format("2006-01-02")
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// GetFinancials retrieves the company financials snapshot
func (r *Repository) GetFinancials() (*models.CompanyFinancials, error) {
	f := &models.CompanyFinancials{}
	err := r.db.QueryRow(`
		SELECT ebitda, cash_balance, available_credit, monthly_burn, fx_volatility
		FROM company_financials
		WHERE id = 1`).
		Scan(&f.EBITDA, &f.CashBalance, &f.AvailableCredit, &f.MonthlyBurn, &f.FXVolatility)
	if err != nil {
		return nil, fmt.Errorf("failed to load company financials: %w", err)
	}
	return f, nil
}
