package scheduler

import (
	"fmt"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
)

// periodMonths maps the month-anchored frequencies to their period
// length. WEEKLY is handled separately in days.
var periodMonths = map[models.ServiceFrequency]int{
	models.FrequencyMonthly:   1,
	models.FrequencyQuarterly: 3,
	models.FrequencyAnnual:    12,
}

// ValidatePaymentDay checks frequency and payment day without computing
// a date.
func ValidatePaymentDay(frequency models.ServiceFrequency, paymentDay int) error {
	if !frequency.Valid() {
		return &InvalidFrequencyError{Frequency: frequency}
	}
	if frequency == models.FrequencyWeekly {
		if paymentDay < 0 || paymentDay > 6 {
			return &InvalidPaymentDayError{Frequency: frequency, PaymentDay: paymentDay}
		}
		return nil
	}
	if paymentDay < 1 || paymentDay > 31 {
		return &InvalidPaymentDayError{Frequency: frequency, PaymentDay: paymentDay}
	}
	return nil
}

// ComputeInitialDueDate finds the soonest occurrence of paymentDay on or
// after referenceDate consistent with frequency.
//
// For WEEKLY, paymentDay is a weekday (0=Sunday .. 6=Saturday) and the
// result rolls forward 0-6 days, never backwards. For the
// month-anchored frequencies, paymentDay is a day-of-month clamped to
// the month's length; if that date already passed in the reference
// month, the result rolls forward one full period.
func ComputeInitialDueDate(frequency models.ServiceFrequency, paymentDay int, referenceDate time.Time) (time.Time, error) {
	if err := ValidatePaymentDay(frequency, paymentDay); err != nil {
		return time.Time{}, err
	}

	ref := midnight(referenceDate)

	if frequency == models.FrequencyWeekly {
		offset := (paymentDay - int(ref.Weekday()) + 7) % 7
		return ref.AddDate(0, 0, offset), nil
	}

	year, month := ref.Year(), ref.Month()
	candidate := time.Date(year, month, clampDay(year, month, paymentDay), 0, 0, 0, 0, ref.Location())
	if candidate.Before(ref) {
		candidate = addMonthsClamped(candidate, periodMonths[frequency], paymentDay)
	}
	return candidate, nil
}

// AdvanceDueDate returns the due date one full period after
// currentDueDate, clamping the day-of-month to shorter months. It
// advances exactly one period per call; callers catching up a service
// that is several periods behind invoke it repeatedly.
func AdvanceDueDate(currentDueDate time.Time, frequency models.ServiceFrequency) (time.Time, error) {
	if !frequency.Valid() {
		return time.Time{}, &InvalidFrequencyError{Frequency: frequency}
	}

	current := midnight(currentDueDate)
	if frequency == models.FrequencyWeekly {
		return current.AddDate(0, 0, 7), nil
	}
	return addMonthsClamped(current, periodMonths[frequency], current.Day()), nil
}

// IsDueOrOverdue reports whether an active service's next due date has
// arrived or passed as of the given date. Inactive services are never
// due.
func IsDueOrOverdue(svc *models.Service, asOf time.Time) bool {
	return svc.IsActive && !midnight(svc.NextDueDate).After(midnight(asOf))
}

// DueResult is one elapsed period of one service: the notification to
// record and the service's due date after advancing past that period.
type DueResult struct {
	ServiceID      int64
	DueDate        time.Time
	Notification   models.Notification
	NewNextDueDate time.Time
}

// EvaluateServicesDue walks the given services and, for each active
// service whose next due date has arrived or passed, emits exactly one
// SERVICE_DUE notification per elapsed period (oldest first) and the
// due date after that period. A service overdue by two periods yields
// two results; the last result's NewNextDueDate is strictly after asOf.
//
// The slice order follows the input; periods within a service are
// strictly ordered. Callers persist the notifications and the final
// NewNextDueDate per service.
func EvaluateServicesDue(services []*models.Service, asOf time.Time) ([]DueResult, error) {
	var results []DueResult
	for _, svc := range services {
		if !IsDueOrOverdue(svc, asOf) {
			continue
		}
		due := midnight(svc.NextDueDate)
		for !due.After(midnight(asOf)) {
			next, err := AdvanceDueDate(due, svc.Frequency)
			if err != nil {
				return nil, err
			}
			results = append(results, DueResult{
				ServiceID: svc.ID,
				DueDate:   due,
				Notification: models.Notification{
					UserID:           svc.UserID,
					Type:             models.NotificationServiceDue,
					Title:            fmt.Sprintf("Vencimiento: %s", svc.Name),
					Message:          fmt.Sprintf("Tu servicio %s vence el %s. Monto: %s", svc.Name, due.Format("2006-01-02"), svc.Amount.StringFixed(2)),
					RelatedServiceID: &svc.ID,
				},
				NewNextDueDate: next,
			})
			due = next
		}
	}
	return results, nil
}
