package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/agrovista/agrodash/internal/config"
	"github.com/agrovista/agrodash/internal/models"
)

// Sender handles sending alert emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendPaymentReminder notifies about an overdue or upcoming installment
func (s *Sender) SendPaymentReminder(to string, payment models.DebtPayment) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}

	dueDate := "unknown date"
	if payment.DueDate != nil {
		dueDate = payment.DueDate.Format("02/01/2006")
	}

	amount := payment.AmountBRL
	if amount == 0 {
		amount = payment.TotalAmount
	}

	var body string
	if payment.Status == models.PaymentStatusOverdue {
		e.Subject = fmt.Sprintf("Overdue installment %d/%d - contract %s",
			payment.InstallmentNumber, payment.InstallmentTotal, payment.ContractNumber)
		body = fmt.Sprintf(
			"Installment %d/%d of contract %s (%s) was due on %s and is overdue.\n"+
				"Amount: R$ %.2f\n"+
				"Please verify the payment with the institution.\n",
			payment.InstallmentNumber, payment.InstallmentTotal, payment.ContractNumber,
			payment.Institution, dueDate, amount,
		)
	} else {
		e.Subject = fmt.Sprintf("Upcoming installment %d/%d - contract %s",
			payment.InstallmentNumber, payment.InstallmentTotal, payment.ContractNumber)
		body = fmt.Sprintf(
			"Installment %d/%d of contract %s (%s) is due on %s.\n"+
				"Amount: R$ %.2f\n",
			payment.InstallmentNumber, payment.InstallmentTotal, payment.ContractNumber,
			payment.Institution, dueDate, amount,
		)
	}
	body += "\nAgrodash"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendCovenantAlert notifies about a covenant classification
func (s *Sender) SendCovenantAlert(to, contractNumber string, covenant models.ContractCovenant) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Covenant %s %s - contract %s", covenant.Name, covenant.Status, contractNumber)

	body := fmt.Sprintf(
		"Covenant %s on contract %s is classified as %s.\n"+
			"Required: %.2f\n"+
			"Current: %.2f\n",
		covenant.Name, contractNumber, covenant.Status, covenant.Required, covenant.Current,
	)
	body += "\nAgrodash"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
