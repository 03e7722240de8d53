package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
)

// CreateCredit creates a credit record. Installments are written
// separately by the caller, inside the same WithTx scope.
func (r *Repository) CreateCredit(ctx context.Context, credit *models.Credit) error {
	query := `
		INSERT INTO finanzas.credits
			(product_id, purchase_date, description, total_amount, total_installments, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query,
		credit.ProductID, credit.PurchaseDate, credit.Description,
		credit.TotalAmount, credit.TotalInstallments).
		Scan(&credit.ID, &credit.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create credit: %w", err)
	}
	return nil
}

// ListCredits retrieves all credits posted against a product
func (r *Repository) ListCredits(ctx context.Context, productID int64) ([]models.Credit, error) {
	query := `
		SELECT id, product_id, purchase_date, description, total_amount, total_installments, created_at
		FROM finanzas.credits
		WHERE product_id = $1
		ORDER BY purchase_date DESC, id DESC`
	rows, err := r.dbx.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	defer rows.Close()

	var credits []models.Credit
	for rows.Next() {
		var c models.Credit
		if err := rows.Scan(&c.ID, &c.ProductID, &c.PurchaseDate, &c.Description,
			&c.TotalAmount, &c.TotalInstallments, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credit: %w", err)
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// FindCredit retrieves a credit by ID, scoped to the owning user
// through the product.
func (r *Repository) FindCredit(ctx context.Context, id, userID int64) (*models.Credit, error) {
	query := `
		SELECT c.id, c.product_id, c.purchase_date, c.description, c.total_amount, c.total_installments, c.created_at
		FROM finanzas.credits c
		JOIN finanzas.products p ON p.id = c.product_id
		WHERE c.id = $1 AND p.user_id = $2`
	credit := &models.Credit{}
	err := r.dbx.QueryRowContext(ctx, query, id, userID).
		Scan(&credit.ID, &credit.ProductID, &credit.PurchaseDate, &credit.Description,
			&credit.TotalAmount, &credit.TotalInstallments, &credit.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("credit %d: %w", id, scheduler.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credit: %w", err)
	}
	return credit, nil
}

// CreateInstallment writes one installment row for a credit
func (r *Repository) CreateInstallment(ctx context.Context, inst *models.Installment) error {
	query := `
		INSERT INTO finanzas.installments
			(credit_id, installment_number, amount, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query,
		inst.CreditID, inst.InstallmentNumber, inst.Amount, inst.DueDate, inst.Status).
		Scan(&inst.ID, &inst.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create installment: %w", err)
	}
	return nil
}

// ListInstallments retrieves a credit's installments in sequence order
func (r *Repository) ListInstallments(ctx context.Context, creditID int64) ([]models.Installment, error) {
	query := `
		SELECT id, credit_id, installment_number, amount, due_date, status, created_at
		FROM finanzas.installments
		WHERE credit_id = $1
		ORDER BY installment_number`
	rows, err := r.dbx.QueryContext(ctx, query, creditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()
	return collectInstallments(rows)
}

// FindInstallment retrieves an installment by ID, scoped to the owning
// user through the credit and product chain.
func (r *Repository) FindInstallment(ctx context.Context, id, userID int64) (*models.Installment, error) {
	query := `
		SELECT i.id, i.credit_id, i.installment_number, i.amount, i.due_date, i.status, i.created_at
		FROM finanzas.installments i
		JOIN finanzas.credits c ON c.id = i.credit_id
		JOIN finanzas.products p ON p.id = c.product_id
		WHERE i.id = $1 AND p.user_id = $2`
	inst := &models.Installment{}
	err := r.dbx.QueryRowContext(ctx, query, id, userID).
		Scan(&inst.ID, &inst.CreditID, &inst.InstallmentNumber, &inst.Amount,
			&inst.DueDate, &inst.Status, &inst.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("installment %d: %w", id, scheduler.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installment: %w", err)
	}
	return inst, nil
}

// UpdateInstallmentStatus persists an installment status transition
func (r *Repository) UpdateInstallmentStatus(ctx context.Context, id int64, status models.InstallmentStatus) error {
	result, err := r.dbx.ExecContext(ctx,
		`UPDATE finanzas.installments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update installment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("installment %d: %w", id, scheduler.ErrNotFound)
	}
	return nil
}

// ListPendingInstallments retrieves a user's PENDING installments
// across all credits, soonest due first.
func (r *Repository) ListPendingInstallments(ctx context.Context, userID int64) ([]models.Installment, error) {
	query := `
		SELECT i.id, i.credit_id, i.installment_number, i.amount, i.due_date, i.status, i.created_at
		FROM finanzas.installments i
		JOIN finanzas.credits c ON c.id = i.credit_id
		JOIN finanzas.products p ON p.id = c.product_id
		WHERE p.user_id = $1 AND i.status = 'PENDING'
		ORDER BY i.due_date`
	rows, err := r.dbx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending installments: %w", err)
	}
	defer rows.Close()
	return collectInstallments(rows)
}

// CountPendingInstallments counts a user's PENDING installments
func (r *Repository) CountPendingInstallments(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM finanzas.installments i
		JOIN finanzas.credits c ON c.id = i.credit_id
		JOIN finanzas.products p ON p.id = c.product_id
		WHERE p.user_id = $1 AND i.status = 'PENDING'`
	var count int
	if err := r.dbx.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending installments: %w", err)
	}
	return count, nil
}

func collectInstallments(rows *sql.Rows) ([]models.Installment, error) {
	var installments []models.Installment
	for rows.Next() {
		var inst models.Installment
		if err := rows.Scan(&inst.ID, &inst.CreditID, &inst.InstallmentNumber,
			&inst.Amount, &inst.DueDate, &inst.Status, &inst.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}
