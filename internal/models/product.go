package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a financial product (account, card, investment)
// held by a user at an institution.
type Product struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	InstitutionID int64           `json:"institution_id"`
	ProductType   ProductType     `json:"product_type"`
	Identifier    string          `json:"identifier,omitempty"` // account number or last 4 digits
	CurrencyID    int64           `json:"currency_id"`
	Balance       decimal.Decimal `json:"balance"`
	PaymentDueDay *int            `json:"payment_due_day,omitempty"` // statement day for credit cards
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Institution represents a bank or financial institution defined by a user
type Institution struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Currency is a reference catalog entry (shared across users)
type Currency struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is a user-defined transaction category
type Category struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Emoji     string       `json:"emoji,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
