package service

import (
	"fmt"

	"github.com/agrovista/agrodash/internal/models"
)

// CreateContract stores a new contract with its covenants. Defaults: active
// status, BRL currency, fixed rate.
func (s *Service) CreateContract(c *models.DebtContract) error {
	if c.Status == "" {
		c.Status = models.ContractStatusActive
	}
	if c.Currency == "" {
		c.Currency = "BRL"
	}
	if c.RateType == "" {
		c.RateType = models.RateTypeFixed
	}
	if err := s.repo.CreateContract(c); err != nil {
		return fmt.Errorf("failed to create contract %s: %w", c.ContractNumber, err)
	}
	s.log.Infof("Contract %s created (%s %.2f %s)", c.ContractNumber, c.Institution, c.PrincipalBalance, c.Currency)
	return nil
}

// UpdateContractStatus transitions a contract between lifecycle states
func (s *Service) UpdateContractStatus(id int64, status string) error {
	switch status {
	case models.ContractStatusActive, models.ContractStatusGrace,
		models.ContractStatusDefault, models.ContractStatusPaid:
	default:
		return fmt.Errorf("unknown contract status %q", status)
	}
	return s.repo.UpdateContractStatus(id, status)
}

// ReplaceCovenants swaps a contract's covenant set atomically
func (s *Service) ReplaceCovenants(contractID int64, covenants []models.ContractCovenant) error {
	return s.repo.ReplaceCovenants(contractID, covenants)
}
