package importer

import (
	"time"

	"github.com/agrovista/agrodash/internal/models"
)

// BackfillPastInstallments synthesizes the installments that preceded a
// known payment, walking backward month-by-month from its due date. The
// export only carries the current installment of each contract, so history
// shown in the dashboard before the first real import is estimated.
//
// Every record produced here is an estimate, not ground truth: it carries
// Backfilled=true and must never overwrite an ingested row.
func BackfillPastInstallments(p models.DebtPayment, now time.Time) []models.DebtPayment {
	if p.DueDate == nil || p.InstallmentNumber <= 1 {
		return nil
	}

	today := truncateToDay(now)
	synthetic := make([]models.DebtPayment, 0, p.InstallmentNumber-1)
	for i := 1; i < p.InstallmentNumber; i++ {
		monthsBack := p.InstallmentNumber - i
		due := p.DueDate.AddDate(0, -monthsBack, 0)

		record := p
		record.ID = 0
		record.InstallmentNumber = i
		record.DueDate = &due
		// earlier installments carried a larger remaining balance
		record.RemainingBalance = p.RemainingBalance + p.PrincipalAmount*float64(monthsBack)
		record.Status = inferStatus(&due, today)
		record.StatusSource = models.StatusSourceInferred
		record.Backfilled = true
		record.DocumentID = ""
		record.RawLine = ""

		synthetic = append(synthetic, record)
	}
	return synthetic
}
