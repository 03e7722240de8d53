package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
	"github.com/shopspring/decimal"
)

// ServiceParams contains parameters for creating or updating a
// recurring service.
type ServiceParams struct {
	ProductID   *int64
	Name        string
	Description string
	Amount      decimal.Decimal
	CurrencyID  int64
	Frequency   models.ServiceFrequency
	PaymentDay  int
	PaymentType models.PaymentType
	IsActive    bool
}

func (p ServiceParams) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: service amount must be positive, got %s", ErrValidation, p.Amount)
	}
	if !p.PaymentType.Valid() {
		return fmt.Errorf("%w: invalid payment type %q", ErrValidation, p.PaymentType)
	}
	return nil
}

// CreateRecurringService creates a service with its next due date
// computed from the payment day and today's date.
func (s *Service) CreateRecurringService(ctx context.Context, userID int64, params ServiceParams) (*models.Service, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	nextDue, err := scheduler.ComputeInitialDueDate(params.Frequency, params.PaymentDay, s.today())
	if err != nil {
		return nil, err
	}

	svc := &models.Service{
		UserID:      userID,
		ProductID:   params.ProductID,
		Name:        params.Name,
		Description: params.Description,
		Amount:      params.Amount,
		CurrencyID:  params.CurrencyID,
		Frequency:   params.Frequency,
		PaymentDay:  params.PaymentDay,
		PaymentType: params.PaymentType,
		IsActive:    params.IsActive,
		NextDueDate: nextDue,
	}

	if err := s.store.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	s.log.Infof("Service %q created for user %d, next due %s",
		svc.Name, userID, svc.NextDueDate.Format("2006-01-02"))
	return svc, nil
}

// UpdateRecurringService overwrites a service's fields. The next due
// date is recomputed when frequency or payment day changed.
func (s *Service) UpdateRecurringService(ctx context.Context, userID, serviceID int64, params ServiceParams) (*models.Service, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	svc, err := s.store.FindService(ctx, serviceID, userID)
	if err != nil {
		return nil, err
	}

	if err := scheduler.ValidatePaymentDay(params.Frequency, params.PaymentDay); err != nil {
		return nil, err
	}
	if svc.Frequency != params.Frequency || svc.PaymentDay != params.PaymentDay {
		nextDue, err := scheduler.ComputeInitialDueDate(params.Frequency, params.PaymentDay, s.today())
		if err != nil {
			return nil, err
		}
		svc.NextDueDate = nextDue
	}

	svc.ProductID = params.ProductID
	svc.Name = params.Name
	svc.Description = params.Description
	svc.Amount = params.Amount
	svc.CurrencyID = params.CurrencyID
	svc.Frequency = params.Frequency
	svc.PaymentDay = params.PaymentDay
	svc.PaymentType = params.PaymentType
	svc.IsActive = params.IsActive

	if err := s.store.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetRecurringService returns one of the user's services
func (s *Service) GetRecurringService(ctx context.Context, userID, serviceID int64) (*models.Service, error) {
	return s.store.FindService(ctx, serviceID, userID)
}

// ListRecurringServices returns the user's services ordered by next due
// date, optionally filtered by active state.
func (s *Service) ListRecurringServices(ctx context.Context, userID int64, isActive *bool) ([]models.Service, error) {
	return s.store.ListServices(ctx, userID, isActive)
}

// ListUpcomingServices returns active services due within the next
// daysAhead days.
func (s *Service) ListUpcomingServices(ctx context.Context, userID int64, daysAhead int) ([]models.Service, error) {
	if daysAhead < 1 {
		daysAhead = 7
	}
	from := s.today()
	return s.store.ListUpcomingServices(ctx, userID, from, from.AddDate(0, 0, daysAhead))
}

// DeleteRecurringService removes a service owned by the user
func (s *Service) DeleteRecurringService(ctx context.Context, userID, serviceID int64) error {
	return s.store.DeleteService(ctx, serviceID, userID)
}

// EvaluateDueServices runs the clock over a user's active services:
// one SERVICE_DUE notification is stored per elapsed period, oldest
// first, and each service's next due date advances past today. Returns
// the notifications created.
func (s *Service) EvaluateDueServices(ctx context.Context, userID int64) ([]models.Notification, error) {
	active := true
	services, err := s.store.ListServices(ctx, userID, &active)
	if err != nil {
		return nil, err
	}
	return s.processDueServices(ctx, services)
}

// EvaluateAllDueServices runs the clock over every user's active due
// services. Invoked by the periodic tick in cmd/api.
func (s *Service) EvaluateAllDueServices(ctx context.Context) (int, error) {
	services, err := s.store.ListAllDueServices(ctx, s.today())
	if err != nil {
		return 0, err
	}
	notifications, err := s.processDueServices(ctx, services)
	if err != nil {
		return 0, err
	}
	return len(notifications), nil
}

func (s *Service) processDueServices(ctx context.Context, services []models.Service) ([]models.Notification, error) {
	refs := make([]*models.Service, len(services))
	for i := range services {
		refs[i] = &services[i]
	}

	results, err := scheduler.EvaluateServicesDue(refs, s.today())
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	var created []models.Notification
	err = s.store.WithTx(ctx, func(tx Store) error {
		for i := range results {
			r := &results[i]
			if err := tx.CreateNotification(ctx, &r.Notification); err != nil {
				return err
			}
			if err := tx.UpdateServiceNextDueDate(ctx, r.ServiceID, r.NewNextDueDate); err != nil {
				return err
			}
			created = append(created, r.Notification)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendReminders(ctx, refs, results)

	s.log.Infof("Clock evaluation created %d notifications across %d services",
		len(created), len(refs))
	return created, nil
}

// sendReminders emails one reminder per due service. Email failures are
// logged and never fail the evaluation.
func (s *Service) sendReminders(ctx context.Context, services []*models.Service, results []scheduler.DueResult) {
	if s.mailer == nil {
		return
	}

	// One email per service, dated with its most recent elapsed period.
	lastDue := make(map[int64]time.Time)
	for _, r := range results {
		lastDue[r.ServiceID] = r.DueDate
	}

	for _, svc := range services {
		due, ok := lastDue[svc.ID]
		if !ok {
			continue
		}
		user, err := s.store.FindUserByID(ctx, svc.UserID)
		if err != nil {
			s.log.Errorf("Reminder skipped, user %d lookup failed: %v", svc.UserID, err)
			continue
		}
		if err := s.mailer.SendServiceReminder(user.Email, user.Username, svc.Name, due, svc.Amount); err != nil {
			s.log.Errorf("Failed to send reminder for service %d: %v", svc.ID, err)
		}
	}
}
