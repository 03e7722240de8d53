package service

import (
	"time"

	"github.com/finanzas-app/finanzas-service/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReminderMailer sends due-payment reminder emails. Nil disables email
// delivery; notifications are still stored.
type ReminderMailer interface {
	SendServiceReminder(to, username, serviceName string, dueDate time.Time, amount decimal.Decimal) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	mailer ReminderMailer

	// Now supplies the current time for all date computations, so the
	// core logic never reads the system clock directly.
	Now func() time.Time
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config, mailer ReminderMailer) *Service {
	return &Service{
		store:  store,
		log:    log,
		config: cfg,
		mailer: mailer,
		Now:    time.Now,
	}
}

func (s *Service) today() time.Time {
	now := s.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
