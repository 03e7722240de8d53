package repository

import (
	"context"
	"fmt"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
)

// CreateInstitution creates a new institution for a user
func (r *Repository) CreateInstitution(ctx context.Context, inst *models.Institution) error {
	query := `
		INSERT INTO finanzas.institutions (user_id, name, logo_url, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query, inst.UserID, inst.Name, inst.LogoURL).
		Scan(&inst.ID, &inst.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create institution: %w", err)
	}
	return nil
}

// ListInstitutions retrieves all institutions owned by a user
func (r *Repository) ListInstitutions(ctx context.Context, userID int64) ([]models.Institution, error) {
	query := `
		SELECT id, user_id, name, logo_url, created_at
		FROM finanzas.institutions
		WHERE user_id = $1
		ORDER BY name`
	rows, err := r.dbx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	defer rows.Close()

	var institutions []models.Institution
	for rows.Next() {
		var inst models.Institution
		if err := rows.Scan(&inst.ID, &inst.UserID, &inst.Name, &inst.LogoURL, &inst.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan institution: %w", err)
		}
		institutions = append(institutions, inst)
	}
	return institutions, rows.Err()
}

// DeleteInstitution removes an institution owned by a user
func (r *Repository) DeleteInstitution(ctx context.Context, id, userID int64) error {
	result, err := r.dbx.ExecContext(ctx,
		`DELETE FROM finanzas.institutions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete institution: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("institution %d: %w", id, scheduler.ErrNotFound)
	}
	return nil
}

// CreateCurrency adds a currency to the shared catalog
func (r *Repository) CreateCurrency(ctx context.Context, currency *models.Currency) error {
	query := `
		INSERT INTO finanzas.currencies (code, name, symbol, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query, currency.Code, currency.Name, currency.Symbol).
		Scan(&currency.ID, &currency.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create currency: %w", err)
	}
	return nil
}

// ListCurrencies retrieves the full currency catalog
func (r *Repository) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	rows, err := r.dbx.QueryContext(ctx,
		`SELECT id, code, name, symbol, created_at FROM finanzas.currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []models.Currency
	for rows.Next() {
		var c models.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

// CreateCategory creates a category for a user
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO finanzas.categories (user_id, name, type, emoji, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query, category.UserID, category.Name, category.Type, category.Emoji).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListCategories retrieves a user's categories, optionally filtered by type
func (r *Repository) ListCategories(ctx context.Context, userID int64, categoryType *models.CategoryType) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, type, emoji, created_at
		FROM finanzas.categories
		WHERE user_id = $1 AND ($2::text IS NULL OR type = $2)
		ORDER BY name`
	var typeArg any
	if categoryType != nil {
		typeArg = string(*categoryType)
	}
	rows, err := r.dbx.QueryContext(ctx, query, userID, typeArg)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Emoji, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory removes a category owned by a user
func (r *Repository) DeleteCategory(ctx context.Context, id, userID int64) error {
	result, err := r.dbx.ExecContext(ctx,
		`DELETE FROM finanzas.categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category %d: %w", id, scheduler.ErrNotFound)
	}
	return nil
}
