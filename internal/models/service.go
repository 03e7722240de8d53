package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service represents a recurring obligation (subscription, utility).
// NextDueDate advances each time the due date passes or a payment posts;
// services are deactivated rather than destroyed.
type Service struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	ProductID   *int64           `json:"product_id,omitempty"` // nil for services paid outside a tracked product
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	CurrencyID  int64            `json:"currency_id"`
	Frequency   ServiceFrequency `json:"frequency"`
	PaymentDay  int              `json:"payment_day"` // day-of-month, or weekday 0-6 for WEEKLY
	PaymentType PaymentType      `json:"payment_type"`
	IsActive    bool             `json:"is_active"`
	NextDueDate time.Time        `json:"next_due_date"`
	CreatedAt   time.Time        `json:"created_at"`
}
