package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateTransactionParams contains parameters for recording a
// transaction.
type CreateTransactionParams struct {
	ProductID       int64
	Type            models.TransactionType
	TransactionDate time.Time
	Category        string
	Description     string
	Amount          decimal.Decimal
}

// CreateTransaction records a transaction and adjusts the product
// balance in the same transaction scope (credited for INCOME, debited
// for EXPENSE).
func (s *Service) CreateTransaction(ctx context.Context, userID int64, params CreateTransactionParams) (*models.Transaction, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: invalid transaction type %q", ErrValidation, params.Type)
	}
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction amount must be positive, got %s", ErrValidation, params.Amount)
	}

	if _, err := s.store.FindProduct(ctx, params.ProductID, userID); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ProductID:       params.ProductID,
		Type:            params.Type,
		TransactionDate: params.TransactionDate,
		Category:        params.Category,
		Description:     params.Description,
		Amount:          params.Amount,
	}

	delta := params.Amount
	if params.Type == models.TransactionExpense {
		delta = delta.Neg()
	}

	err := s.store.WithTx(ctx, func(store Store) error {
		if err := store.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		return store.UpdateProductBalance(ctx, params.ProductID, delta)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Transaction %d (%s %s) recorded for product %d",
		tx.ID, tx.Type, tx.Amount, tx.ProductID)
	return tx, nil
}

// ListTransactions returns a product's transactions, newest first
func (s *Service) ListTransactions(ctx context.Context, userID, productID int64, limit, offset int) ([]models.Transaction, error) {
	if _, err := s.store.FindProduct(ctx, productID, userID); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListTransactions(ctx, productID, limit, offset)
}

// GetDashboardSummary aggregates the figures the dashboard shows on
// load: total balance, current-month income and expense, pending
// installments and unread notifications.
func (s *Service) GetDashboardSummary(ctx context.Context, userID int64) (*models.DashboardSummary, error) {
	today := s.today()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	stats, err := s.store.GetIncomeExpenseStats(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	total, err := s.store.GetTotalBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.CountPendingInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.store.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		TotalBalance:        total,
		MonthStats:          *stats,
		PendingInstallments: pending,
		UnreadNotifications: unread,
	}, nil
}
