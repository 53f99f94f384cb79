package importer

// BackfillPastInstallments is a synthetic-data estimator: it reconstructs
// installments that were never ingested, from a single known installment.
// These tests pin down the estimate's shape, not any ground truth.

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovista/agrodash/internal/models"
)

func TestBackfillWalksBackwardMonthly(t *testing.T) {
	due := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	known := models.DebtPayment{
		ContractNumber:    "AGR-2024-001",
		InstallmentNumber: 4,
		InstallmentTotal:  12,
		DueDate:           &due,
		PrincipalAmount:   10000,
		RemainingBalance:  80000,
		Status:            models.PaymentStatusPending,
	}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	past := BackfillPastInstallments(known, now)
	require.Len(t, past, 3)

	assert.Equal(t, 1, past[0].InstallmentNumber)
	assert.Equal(t, "2024-12-05", past[0].DueDate.Format("2006-01-02"))
	assert.Equal(t, 2, past[1].InstallmentNumber)
	assert.Equal(t, "2025-01-05", past[1].DueDate.Format("2006-01-02"))
	assert.Equal(t, 3, past[2].InstallmentNumber)
	assert.Equal(t, "2025-02-05", past[2].DueDate.Format("2006-01-02"))

	for _, p := range past {
		assert.True(t, p.Backfilled, "synthetic records must carry provenance")
		assert.Equal(t, models.StatusSourceInferred, p.StatusSource)
		assert.Equal(t, "AGR-2024-001", p.ContractNumber)
		assert.Empty(t, p.DocumentID)
		// all generated dates precede now -> inferred overdue
		assert.Equal(t, models.PaymentStatusOverdue, p.Status)
	}

	// earlier installments carried a larger estimated balance
	assert.Equal(t, 110000.0, past[0].RemainingBalance)
	assert.Equal(t, 100000.0, past[1].RemainingBalance)
	assert.Equal(t, 90000.0, past[2].RemainingBalance)
}

func TestBackfillNothingToDo(t *testing.T) {
	due := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, BackfillPastInstallments(models.DebtPayment{InstallmentNumber: 1, DueDate: &due}, time.Now()))
	assert.Nil(t, BackfillPastInstallments(models.DebtPayment{InstallmentNumber: 5}, time.Now()))
}
