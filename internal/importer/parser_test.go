package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovista/agrodash/internal/models"
)

const sampleHeader = "Instituição;Agência;Conta;Contrato;Produto;Taxa;Indexador;Moeda;Parcela;Vencimento;" +
	"Valor Capital;Valor Juros;Valor Total;Saldo Devedor;Saldo Contábil;Prorrogado;Taxa Câmbio;Valor R$;" +
	"Documento;Data Contratação;Data Liberação;Observação"

func testParser(t *testing.T, now time.Time) *Parser {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	p := NewParser(log)
	p.now = func() time.Time { return now }
	return p
}

func TestParseNormalizesRecords(t *testing.T) {
	input := sampleHeader + "\n" +
		"Banco do Brasil;0342;12345-6;AGR-2024-001;Custeio Soja;9,75%;CDI;BRL;(3/12);05/03/2025;" +
		"R$ 10.000,00;R$ 812,50;R$ 10.812,50;R$ 90.000,00;R$ 91.200,00;Não;;R$ 10.812,50;" +
		"DOC-88123;10/06/2024;15/06/2024;\n" +
		"Rabobank;0001;99887-0;AGR-2023-017;Investimento;6,20%;;USD;(8/20);10/12/2025;" +
		"US$ 25.000,00;US$ 1.291,66;US$ 26.291,66;US$ 300.000,00;US$ 305.000,00;Sim;5,5321;R$ 145.456,09;" +
		"DOC-77456;01/02/2023;10/02/2023;rolagem aprovada\n"

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payments, err := testParser(t, now).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, payments, 2)

	first := payments[0]
	assert.Equal(t, "AGR-2024-001", first.ContractNumber)
	assert.Equal(t, "Banco do Brasil", first.Institution)
	assert.Equal(t, 3, first.InstallmentNumber)
	assert.Equal(t, 12, first.InstallmentTotal)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, "2025-03-05", first.DueDate.Format("2006-01-02"))
	assert.Equal(t, "BRL", first.Currency)
	assert.Equal(t, 10000.00, first.PrincipalAmount)
	assert.Equal(t, 812.50, first.InterestAmount)
	assert.Equal(t, 10812.50, first.TotalAmount)
	assert.Equal(t, 90000.00, first.RemainingBalance)
	require.NotNil(t, first.InterestRate)
	assert.Equal(t, 9.75, *first.InterestRate)
	assert.False(t, first.RolledOver)
	assert.Nil(t, first.ExchangeRate)
	assert.Equal(t, "DOC-88123", first.DocumentID)
	// due date in the past relative to now -> overdue, inferred
	assert.Equal(t, models.PaymentStatusOverdue, first.Status)
	assert.Equal(t, models.StatusSourceInferred, first.StatusSource)
	assert.False(t, first.Backfilled)

	second := payments[1]
	assert.Equal(t, "USD", second.Currency)
	assert.Equal(t, 25000.00, second.PrincipalAmount)
	assert.True(t, second.RolledOver)
	require.NotNil(t, second.ExchangeRate)
	assert.Equal(t, 5.5321, *second.ExchangeRate)
	assert.Equal(t, 145456.09, second.AmountBRL)
	// due date in the future -> pending
	assert.Equal(t, models.PaymentStatusPending, second.Status)
}

func TestParseDefaultsMalformedFields(t *testing.T) {
	input := sampleHeader + "\n" +
		";;;AGR-2025-004;;;;;;;" +
		"quinhentos;-;;;;talvez;;;" +
		";;;\n"

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	payments, err := testParser(t, now).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, payments, 1)

	p := payments[0]
	assert.Equal(t, "AGR-2025-004", p.ContractNumber)
	assert.Equal(t, 1, p.InstallmentNumber)
	assert.Equal(t, 1, p.InstallmentTotal)
	assert.Nil(t, p.DueDate)
	assert.Equal(t, "BRL", p.Currency)
	assert.Equal(t, 0.0, p.PrincipalAmount)
	assert.Nil(t, p.InterestRate)
	assert.False(t, p.RolledOver)
	// no due date: nothing says it is late
	assert.Equal(t, models.PaymentStatusPending, p.Status)
}

func TestParseSkipsRowsWithoutContract(t *testing.T) {
	input := sampleHeader + "\n" +
		"Banco X;;;;;;;;;05/03/2025;;;;;;;;;;;;\n" +
		"Banco Y;;;AGR-1;;;;;(1/1);05/03/2026;;;;;;;;;;;;\n"

	payments, err := testParser(t, time.Now()).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "AGR-1", payments[0].ContractNumber)
}

func TestParseMissingContractColumn(t *testing.T) {
	input := "Instituição;Valor Total\nBanco;R$ 1,00\n"
	_, err := testParser(t, time.Now()).Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParseRoundTripLocaleFormatting(t *testing.T) {
	// a generated row must re-derive the same numeric fields regardless of
	// locale formatting in the input
	row := "Sicredi;;;AGR-9;;11,00%;;BRL;(2/6);20/08/2025;" +
		"1.500,00;27,50;1.527,50;R$ 6.000,00;;Não;;1.527,50;DOC-1;;;\n"
	input := sampleHeader + "\n" + row

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	payments, err := testParser(t, now).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, payments, 1)

	p := payments[0]
	assert.Equal(t, 1500.00, p.PrincipalAmount)
	assert.Equal(t, 27.50, p.InterestAmount)
	assert.Equal(t, 1527.50, p.TotalAmount)
	assert.Equal(t, 6000.00, p.RemainingBalance)
	assert.Equal(t, 1527.50, p.AmountBRL)
}
