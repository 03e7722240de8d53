package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
)

// CreateService creates a recurring service for a user
func (r *Repository) CreateService(ctx context.Context, svc *models.Service) error {
	query := `
		INSERT INTO finanzas.services
			(user_id, product_id, name, description, amount, currency_id,
			 frequency, payment_day, payment_type, is_active, next_due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query,
		svc.UserID, svc.ProductID, svc.Name, svc.Description, svc.Amount, svc.CurrencyID,
		svc.Frequency, svc.PaymentDay, svc.PaymentType, svc.IsActive, svc.NextDueDate).
		Scan(&svc.ID, &svc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// ListServices retrieves a user's services ordered by next due date,
// optionally filtered by active state.
func (r *Repository) ListServices(ctx context.Context, userID int64, isActive *bool) ([]models.Service, error) {
	query := `
		SELECT id, user_id, product_id, name, description, amount, currency_id,
		       frequency, payment_day, payment_type, is_active, next_due_date, created_at
		FROM finanzas.services
		WHERE user_id = $1 AND ($2::boolean IS NULL OR is_active = $2)
		ORDER BY next_due_date`
	var activeArg any
	if isActive != nil {
		activeArg = *isActive
	}
	rows, err := r.dbx.QueryContext(ctx, query, userID, activeArg)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()
	return collectServices(rows)
}

// FindService retrieves a service by ID, scoped to its owner
func (r *Repository) FindService(ctx context.Context, id, userID int64) (*models.Service, error) {
	query := `
		SELECT id, user_id, product_id, name, description, amount, currency_id,
		       frequency, payment_day, payment_type, is_active, next_due_date, created_at
		FROM finanzas.services
		WHERE id = $1 AND user_id = $2`
	svc, err := scanService(r.dbx.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service %d: %w", id, scheduler.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateService overwrites a service's mutable fields
func (r *Repository) UpdateService(ctx context.Context, svc *models.Service) error {
	query := `
		UPDATE finanzas.services
		SET product_id = $3, name = $4, description = $5, amount = $6, currency_id = $7,
		    frequency = $8, payment_day = $9, payment_type = $10, is_active = $11, next_due_date = $12
		WHERE id = $1 AND user_id = $2`
	result, err := r.dbx.ExecContext(ctx, query,
		svc.ID, svc.UserID, svc.ProductID, svc.Name, svc.Description, svc.Amount, svc.CurrencyID,
		svc.Frequency, svc.PaymentDay, svc.PaymentType, svc.IsActive, svc.NextDueDate)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("service %d: %w", svc.ID, scheduler.ErrNotFound)
	}
	return nil
}

// DeleteService removes a service owned by a user
func (r *Repository) DeleteService(ctx context.Context, id, userID int64) error {
	result, err := r.dbx.ExecContext(ctx,
		`DELETE FROM finanzas.services WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("service %d: %w", id, scheduler.ErrNotFound)
	}
	return nil
}

// ListUpcomingServices retrieves active services due within [from, to]
func (r *Repository) ListUpcomingServices(ctx context.Context, userID int64, from, to time.Time) ([]models.Service, error) {
	query := `
		SELECT id, user_id, product_id, name, description, amount, currency_id,
		       frequency, payment_day, payment_type, is_active, next_due_date, created_at
		FROM finanzas.services
		WHERE user_id = $1 AND is_active AND next_due_date BETWEEN $2 AND $3
		ORDER BY next_due_date`
	rows, err := r.dbx.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming services: %w", err)
	}
	defer rows.Close()
	return collectServices(rows)
}

// ListAllDueServices retrieves every active service, for any user,
// whose next due date is on or before asOf. Used by the periodic tick.
func (r *Repository) ListAllDueServices(ctx context.Context, asOf time.Time) ([]models.Service, error) {
	query := `
		SELECT id, user_id, product_id, name, description, amount, currency_id,
		       frequency, payment_day, payment_type, is_active, next_due_date, created_at
		FROM finanzas.services
		WHERE is_active AND next_due_date <= $1
		ORDER BY user_id, next_due_date`
	rows, err := r.dbx.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list due services: %w", err)
	}
	defer rows.Close()
	return collectServices(rows)
}

// UpdateServiceNextDueDate advances a service's next due date
func (r *Repository) UpdateServiceNextDueDate(ctx context.Context, id int64, next time.Time) error {
	result, err := r.dbx.ExecContext(ctx,
		`UPDATE finanzas.services SET next_due_date = $2 WHERE id = $1`, id, next)
	if err != nil {
		return fmt.Errorf("failed to update next due date: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("service %d: %w", id, scheduler.ErrNotFound)
	}
	return nil
}

func scanService(row rowScanner) (*models.Service, error) {
	svc := &models.Service{}
	var productID sql.NullInt64
	var description sql.NullString
	err := row.Scan(&svc.ID, &svc.UserID, &productID, &svc.Name, &description,
		&svc.Amount, &svc.CurrencyID, &svc.Frequency, &svc.PaymentDay,
		&svc.PaymentType, &svc.IsActive, &svc.NextDueDate, &svc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan service: %w", err)
	}
	if productID.Valid {
		svc.ProductID = &productID.Int64
	}
	svc.Description = description.String
	return svc, nil
}

func collectServices(rows *sql.Rows) ([]models.Service, error) {
	var services []models.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}
