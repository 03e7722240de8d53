package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit represents an installment purchase posted against a product.
// Its installments are generated once at creation and owned exclusively
// by the credit.
type Credit struct {
	ID                int64           `json:"id"`
	ProductID         int64           `json:"product_id"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	Description       string          `json:"description"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	TotalInstallments int             `json:"total_installments"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Installment represents a single scheduled payment of a credit
type Installment struct {
	ID                int64             `json:"id"`
	CreditID          int64             `json:"credit_id"`
	InstallmentNumber int               `json:"installment_number"`
	Amount            decimal.Decimal   `json:"amount"`
	DueDate           time.Time         `json:"due_date"`
	Status            InstallmentStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
}
