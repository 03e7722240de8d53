package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateTransaction records a transaction against a product
func (r *Repository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO finanzas.transactions
			(product_id, type, transaction_date, category, description, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query,
		tx.ProductID, tx.Type, tx.TransactionDate, tx.Category, tx.Description, tx.Amount).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves transactions for a product, newest first
func (r *Repository) ListTransactions(ctx context.Context, productID int64, limit, offset int) ([]models.Transaction, error) {
	query := `
		SELECT id, product_id, type, transaction_date, category, description, amount, created_at
		FROM finanzas.transactions
		WHERE product_id = $1
		ORDER BY transaction_date DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.dbx.QueryContext(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Type, &t.TransactionDate,
			&t.Category, &t.Description, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// GetIncomeExpenseStats aggregates income and expense totals over a
// date range across all of a user's products.
func (r *Repository) GetIncomeExpenseStats(ctx context.Context, userID int64, from, to time.Time) (*models.IncomeExpenseStats, error) {
	query := `
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'INCOME'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'EXPENSE'), 0)
		FROM finanzas.transactions t
		JOIN finanzas.products p ON p.id = t.product_id
		WHERE p.user_id = $1 AND t.transaction_date BETWEEN $2 AND $3`
	var income, expense decimal.Decimal
	if err := r.dbx.QueryRowContext(ctx, query, userID, from, to).Scan(&income, &expense); err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	return &models.IncomeExpenseStats{
		Income:     income,
		Expense:    expense,
		NetBalance: income.Sub(expense),
	}, nil
}
