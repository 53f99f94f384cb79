package service

import (
	"time"

	"github.com/agrovista/agrodash/internal/models"
)

// ScanAndAlert runs the daily alert pass: overdue installments and breached
// covenants are mailed to the configured recipient. Send failures are logged
// and do not stop the scan.
func (s *Service) ScanAndAlert() {
	recipient := s.config.AlertRecipient
	if recipient == "" || s.mailer == nil {
		s.log.Debug("Alerting disabled: no recipient or mailer configured")
		return
	}

	overdue, err := s.repo.ListOverduePayments(time.Now())
	if err != nil {
		s.log.Errorf("Alert scan failed to load overdue payments: %v", err)
	}
	sent := 0
	for _, p := range overdue {
		if err := s.mailer.SendPaymentReminder(recipient, p); err != nil {
			s.log.Errorf("Failed to send payment reminder for %s/%d: %v", p.ContractNumber, p.InstallmentNumber, err)
			continue
		}
		sent++
	}

	covenants, _, err := s.CovenantReport()
	if err != nil {
		s.log.Errorf("Alert scan failed to evaluate covenants: %v", err)
		return
	}
	contracts, err := s.repo.ListContracts(false)
	if err != nil {
		s.log.Errorf("Alert scan failed to load contracts: %v", err)
		return
	}
	numbers := make(map[int64]string, len(contracts))
	for _, c := range contracts {
		numbers[c.ID] = c.ContractNumber
	}

	breached := 0
	for _, cov := range covenants {
		if cov.Status != models.CovenantStatusBreach {
			continue
		}
		if err := s.mailer.SendCovenantAlert(recipient, numbers[cov.ContractID], cov); err != nil {
			s.log.Errorf("Failed to send covenant alert for %s: %v", cov.Name, err)
			continue
		}
		breached++
	}

	s.log.Infof("Alert scan done: %d payment reminders, %d covenant alerts", sent, breached)
}

// RefreshRates forces a new exchange-rate snapshot. Failures only log; the
// next conversion will retry or degrade explicitly.
func (s *Service) RefreshRates() {
	if err := s.rates.Refresh(); err != nil {
		s.log.Warnf("Scheduled rate refresh failed: %v", err)
	}
}
