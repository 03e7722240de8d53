package scheduler

import (
	"errors"
	"fmt"

	"github.com/finanzas-app/finanzas-service/internal/models"
)

// Sentinel errors surfaced to the caller for status handling.
var (
	// ErrAlreadyPaid is returned when marking an installment that has
	// already transitioned to PAID. The rejection is deliberate, not a
	// silent no-op.
	ErrAlreadyPaid = errors.New("installment already paid")

	// ErrNotFound is returned when a referenced row does not exist or
	// does not belong to the requesting user.
	ErrNotFound = errors.New("not found")
)

// InvalidCreditParametersError reports a rejected credit input with the
// offending field and value.
type InvalidCreditParametersError struct {
	Field string
	Value string
}

func (e *InvalidCreditParametersError) Error() string {
	return fmt.Sprintf("invalid credit parameters: %s=%s", e.Field, e.Value)
}

// InvalidFrequencyError reports a frequency outside the closed enum.
type InvalidFrequencyError struct {
	Frequency models.ServiceFrequency
}

func (e *InvalidFrequencyError) Error() string {
	return fmt.Sprintf("invalid frequency: %q", string(e.Frequency))
}

// InvalidPaymentDayError reports a payment day out of range for its
// frequency (1-31 for month-anchored frequencies, 0-6 for WEEKLY).
type InvalidPaymentDayError struct {
	Frequency  models.ServiceFrequency
	PaymentDay int
}

func (e *InvalidPaymentDayError) Error() string {
	return fmt.Sprintf("invalid payment day %d for frequency %s", e.PaymentDay, e.Frequency)
}
