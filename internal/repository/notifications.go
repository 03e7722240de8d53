package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
)

// CreateNotification stores a notification for a user
func (r *Repository) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO finanzas.notifications
			(user_id, type, title, message, is_read, related_service_id, related_product_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.dbx.QueryRowContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, n.IsRead, n.RelatedServiceID, n.RelatedProductID).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListNotifications retrieves a user's notifications, newest first,
// optionally filtered by read state.
func (r *Repository) ListNotifications(ctx context.Context, userID int64, isRead *bool, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, is_read, related_service_id, related_product_id, created_at
		FROM finanzas.notifications
		WHERE user_id = $1 AND ($2::boolean IS NULL OR is_read = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`
	var readArg any
	if isRead != nil {
		readArg = *isRead
	}
	rows, err := r.dbx.QueryContext(ctx, query, userID, readArg, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

// CountUnreadNotifications counts a user's unread notifications
func (r *Repository) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.dbx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM finanzas.notifications WHERE user_id = $1 AND NOT is_read`, userID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead acknowledges a notification and returns the
// updated row.
func (r *Repository) MarkNotificationRead(ctx context.Context, id, userID int64) (*models.Notification, error) {
	query := `
		UPDATE finanzas.notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, type, title, message, is_read, related_service_id, related_product_id, created_at`
	n, err := scanNotification(r.dbx.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("notification %d: %w", id, scheduler.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllNotificationsRead acknowledges every unread notification for a
// user and returns how many were updated.
func (r *Repository) MarkAllNotificationsRead(ctx context.Context, userID int64) (int, error) {
	result, err := r.dbx.ExecContext(ctx,
		`UPDATE finanzas.notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(affected), nil
}

// DeleteNotification removes a notification owned by a user
func (r *Repository) DeleteNotification(ctx context.Context, id, userID int64) error {
	result, err := r.dbx.ExecContext(ctx,
		`DELETE FROM finanzas.notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notification %d: %w", id, scheduler.ErrNotFound)
	}
	return nil
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	n := &models.Notification{}
	var serviceID, productID sql.NullInt64
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead,
		&serviceID, &productID, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}
	if serviceID.Valid {
		n.RelatedServiceID = &serviceID.Int64
	}
	if productID.Valid {
		n.RelatedProductID = &productID.Int64
	}
	return n, nil
}
