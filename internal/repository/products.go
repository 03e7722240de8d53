package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
	"github.com/shopspring/decimal"
)

// CreateProduct creates a new financial product for a user
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO finanzas.products
			(user_id, institution_id, product_type, identifier, currency_id, balance, payment_due_day, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query,
		product.UserID, product.InstitutionID, product.ProductType, product.Identifier,
		product.CurrencyID, product.Balance, product.PaymentDueDay, product.IsActive).
		Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// ListProducts retrieves all products owned by a user
func (r *Repository) ListProducts(ctx context.Context, userID int64) ([]models.Product, error) {
	query := `
		SELECT id, user_id, institution_id, product_type, identifier, currency_id,
		       balance, payment_due_day, is_active, created_at
		FROM finanzas.products
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.dbx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// FindProduct retrieves a product by ID, scoped to its owner
func (r *Repository) FindProduct(ctx context.Context, id, userID int64) (*models.Product, error) {
	query := `
		SELECT id, user_id, institution_id, product_type, identifier, currency_id,
		       balance, payment_due_day, is_active, created_at
		FROM finanzas.products
		WHERE id = $1 AND user_id = $2`
	row := r.dbx.QueryRowContext(ctx, query, id, userID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, scheduler.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product owned by a user. Credits, installments
// and transactions under it are removed by the schema's cascade rules.
func (r *Repository) DeleteProduct(ctx context.Context, id, userID int64) error {
	result, err := r.dbx.ExecContext(ctx,
		`DELETE FROM finanzas.products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", id, scheduler.ErrNotFound)
	}
	return nil
}

// UpdateProductBalance adjusts a product balance by delta (negative for
// expenses).
func (r *Repository) UpdateProductBalance(ctx context.Context, productID int64, delta decimal.Decimal) error {
	result, err := r.dbx.ExecContext(ctx,
		`UPDATE finanzas.products SET balance = balance + $2 WHERE id = $1`, productID, delta)
	if err != nil {
		return fmt.Errorf("failed to update product balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", productID, scheduler.ErrNotFound)
	}
	return nil
}

// GetTotalBalance sums the balances of a user's active products
func (r *Repository) GetTotalBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.dbx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM finanzas.products WHERE user_id = $1 AND is_active`, userID).
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balances: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	var identifier sql.NullString
	var dueDay sql.NullInt64
	err := row.Scan(&p.ID, &p.UserID, &p.InstitutionID, &p.ProductType, &identifier,
		&p.CurrencyID, &p.Balance, &dueDay, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Identifier = identifier.String
	if dueDay.Valid {
		day := int(dueDay.Int64)
		p.PaymentDueDay = &day
	}
	return p, nil
}
