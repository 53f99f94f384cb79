package service

import (
	"io"
	"time"

	"github.com/agrovista/agrodash/internal/importer"
	"github.com/agrovista/agrodash/internal/models"
)

// ImportSummary reports the outcome of a schedule import
type ImportSummary struct {
	Parsed     int `json:"parsed"`
	Backfilled int `json:"backfilled"`
	Written    int `json:"written"`
}

// ImportPayments parses a semicolon-delimited schedule export, optionally
// synthesizes the installments preceding each record, and upserts everything.
// Writes happen in sequential chunks; a mid-import failure reports how many
// rows were committed before it.
func (s *Service) ImportPayments(r io.Reader, backfill bool) (*ImportSummary, error) {
	payments, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Parsed: len(payments)}

	if backfill {
		now := time.Now()
		var synthetic []models.DebtPayment
		for _, p := range payments {
			synthetic = append(synthetic, importer.BackfillPastInstallments(p, now)...)
		}
		summary.Backfilled = len(synthetic)
		payments = append(payments, synthetic...)
	}

	written, err := s.repo.UpsertPayments(payments)
	summary.Written = written
	if err != nil {
		s.log.Errorf("Import stopped after %d rows: %v", written, err)
		return summary, err
	}

	s.log.Infof("Imported %d payment rows (%d backfilled)", summary.Written, summary.Backfilled)
	return summary, nil
}
