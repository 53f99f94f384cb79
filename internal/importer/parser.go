package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agrovista/agrodash/internal/models"
)

// Column names of the 22-column schedule export, matched case-insensitively
// against the header row.
const (
	colInstitution = "instituição"
	colBranch      = "agência"
	colAccount     = "conta"
	colContract    = "contrato"
	colProduct     = "produto"
	colRate        = "taxa"
	colIndexer     = "indexador"
	colCurrency    = "moeda"
	colInstallment = "parcela"
	colDueDate     = "vencimento"
	colPrincipal   = "valor capital"
	colInterest    = "valor juros"
	colTotal       = "valor total"
	colBalance     = "saldo devedor"
	colBookBalance = "saldo contábil"
	colRollover    = "prorrogado"
	colFXRate      = "taxa câmbio"
	colAmountBRL   = "valor r$"
	colDocument    = "documento"
	colSignDate    = "data contratação"
	colReleaseDate = "data liberação"
	colNotes       = "observação"
)

// Parser normalizes schedule exports into DebtPayment records
type Parser struct {
	log *logrus.Logger
	now func() time.Time
}

// NewParser initializes a parser. now is used for status inference and
// overridable in tests.
func NewParser(log *logrus.Logger) *Parser {
	return &Parser{log: log, now: time.Now}
}

// Parse reads the semicolon-delimited export and returns the normalized
// payment records. Malformed field values default to zero values instead of
// failing the row; rows without a contract number are skipped. Only an
// unreadable stream or missing header produces an error.
func (p *Parser) Parse(r io.Reader) ([]models.DebtPayment, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols[colContract]; !ok {
		return nil, fmt.Errorf("header row is missing the %q column", colContract)
	}

	today := truncateToDay(p.now())

	var payments []models.DebtPayment
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			p.log.Warnf("Skipping unreadable line %d: %v", line, err)
			continue
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		contractNumber := field(colContract)
		if contractNumber == "" {
			p.log.Warnf("Skipping line %d: empty contract number", line)
			continue
		}

		current, total := ParseInstallment(field(colInstallment))
		due := ParseDateBR(field(colDueDate))

		currency := strings.ToUpper(field(colCurrency))
		if currency == "" {
			currency = "BRL"
		}

		payment := models.DebtPayment{
			ContractNumber:    contractNumber,
			Institution:       field(colInstitution),
			InstallmentNumber: current,
			InstallmentTotal:  total,
			DueDate:           due,
			Currency:          currency,
			PrincipalAmount:   ParseBRLNumber(field(colPrincipal)),
			InterestAmount:    ParseBRLNumber(field(colInterest)),
			TotalAmount:       ParseBRLNumber(field(colTotal)),
			RemainingBalance:  ParseBRLNumber(field(colBalance)),
			InterestRate:      ParsePercent(field(colRate)),
			RolledOver:        parseRollover(field(colRollover)),
			ExchangeRate:      ParsePercent(field(colFXRate)),
			AmountBRL:         ParseBRLNumber(field(colAmountBRL)),
			DocumentID:        field(colDocument),
			Status:            inferStatus(due, today),
			StatusSource:      models.StatusSourceInferred,
			RawLine:           strings.Join(record, ";"),
		}
		if payment.TotalAmount == 0 {
			payment.TotalAmount = payment.PrincipalAmount + payment.InterestAmount
		}

		payments = append(payments, payment)
	}

	p.log.Infof("Parsed %d payment records from import", len(payments))
	return payments, nil
}

// indexColumns maps normalized header names to their positions
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

// inferStatus derives payment status from the due date alone: the export
// carries no settlement confirmation, so a future due date means pending and
// a past one means overdue. The approximation is recorded through
// StatusSource on the record.
func inferStatus(due *time.Time, today time.Time) string {
	if due == nil || !due.Before(today) {
		return models.PaymentStatusPending
	}
	return models.PaymentStatusOverdue
}

// truncateToDay normalizes to a UTC date so comparisons line up with the
// UTC times produced by ParseDateBR.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
