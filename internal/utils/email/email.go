package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/finanzas-app/finanzas-service/internal/config"
)

// Sender handles sending emails via SMTP
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

// SendServiceReminder sends a due-payment reminder for a recurring
// service.
func (s *Sender) SendServiceReminder(to, username, serviceName string, dueDate time.Time, amount decimal.Decimal) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Recordatorio de pago: %s", serviceName)

	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"Tu servicio %s vence el %s. Monto: %s.\n"+
			"No olvides realizar el pago para evitar cortes.\n\n"+
			"Saludos,\nFinanzas Personales",
		username, serviceName, dueDate.Format("2006-01-02"), amount.StringFixed(2),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
