package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction posted to a product
type Transaction struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	Type            TransactionType `json:"type"`
	TransactionDate time.Time       `json:"transaction_date"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
}
