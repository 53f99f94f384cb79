// Package service holds the business logic between the HTTP handlers and
// the repository: portfolio aggregation, scenario runs, cash-flow report
// assembly, the import pipeline and the alert scan.
package service

import (
	"github.com/sirupsen/logrus"

	"github.com/agrovista/agrodash/internal/config"
	"github.com/agrovista/agrodash/internal/importer"
	"github.com/agrovista/agrodash/internal/models"
	"github.com/agrovista/agrodash/internal/repository"
)

// AlertMailer sends operational alert emails
type AlertMailer interface {
	SendPaymentReminder(to string, payment models.DebtPayment) error
	SendCovenantAlert(to, contractNumber string, covenant models.ContractCovenant) error
}

// RateSource supplies conversion rates with explicit degradation: CurrentRates
// fails when no snapshot can be obtained and the caller decides on fallback.
type RateSource interface {
	CurrentRates() (map[string]float64, error)
	Refresh() error
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	rates  RateSource
	mailer AlertMailer
	parser *importer.Parser
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, rates RateSource, mailer AlertMailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		rates:  rates,
		mailer: mailer,
		parser: importer.NewParser(log),
		log:    log,
		config: cfg,
	}
}
