package service

import (
	"context"
	"fmt"

	"github.com/finanzas-app/finanzas-service/internal/models"
)

// CreateNotificationParams contains parameters for storing a
// notification. At most one related ID may be set.
type CreateNotificationParams struct {
	Type             models.NotificationType
	Title            string
	Message          string
	RelatedServiceID *int64
	RelatedProductID *int64
}

func (p CreateNotificationParams) validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: invalid notification type %q", ErrValidation, p.Type)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: notification title is required", ErrValidation)
	}
	if p.Message == "" {
		return fmt.Errorf("%w: notification message is required", ErrValidation)
	}
	if p.RelatedServiceID != nil && p.RelatedProductID != nil {
		return fmt.Errorf("%w: at most one related entity may be set", ErrValidation)
	}
	return nil
}

// CreateNotification stores a notification for the user
func (s *Service) CreateNotification(ctx context.Context, userID int64, params CreateNotificationParams) (*models.Notification, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	n := &models.Notification{
		UserID:           userID,
		Type:             params.Type,
		Title:            params.Title,
		Message:          params.Message,
		RelatedServiceID: params.RelatedServiceID,
		RelatedProductID: params.RelatedProductID,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotifications returns the user's notifications, newest first
func (s *Service) ListNotifications(ctx context.Context, userID int64, isRead *bool, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.store.ListNotifications(ctx, userID, isRead, limit)
}

// CountUnreadNotifications returns the user's unread notification count
func (s *Service) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}

// MarkNotificationRead acknowledges one notification
func (s *Service) MarkNotificationRead(ctx context.Context, userID, notificationID int64) (*models.Notification, error) {
	return s.store.MarkNotificationRead(ctx, notificationID, userID)
}

// MarkAllNotificationsRead acknowledges every unread notification and
// returns how many were updated.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, userID int64) (int, error) {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

// DeleteNotification removes a notification owned by the user
func (s *Service) DeleteNotification(ctx context.Context, userID, notificationID int64) error {
	return s.store.DeleteNotification(ctx, notificationID, userID)
}
