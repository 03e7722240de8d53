package handler

import (
	"net/http"
	"strconv"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/service"
)

type createNotificationRequest struct {
	Type             models.NotificationType `json:"type"`
	Title            string                  `json:"title"`
	Message          string                  `json:"message"`
	RelatedServiceID *int64                  `json:"related_service_id"`
	RelatedProductID *int64                  `json:"related_product_id"`
}

type countResponse struct {
	Count int `json:"count"`
}

// CreateNotification handles POST /notifications.
func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createNotificationRequest
	if !h.decode(w, r, &req) {
		return
	}

	notification, err := h.svc.CreateNotification(r.Context(), userID, service.CreateNotificationParams{
		Type:             req.Type,
		Title:            req.Title,
		Message:          req.Message,
		RelatedServiceID: req.RelatedServiceID,
		RelatedProductID: req.RelatedProductID,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, notification)
}

// ListNotifications handles GET /notifications?is_read=&limit=.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var isRead *bool
	if raw := r.URL.Query().Get("is_read"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.respond(w, http.StatusBadRequest, errorResponse{Error: "is_read must be a boolean"})
			return
		}
		isRead = &v
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	notifications, err := h.svc.ListNotifications(r.Context(), userID, isRead, limit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, notifications)
}

// CountUnread handles GET /notifications/count.
func (h *Handler) CountUnread(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	count, err := h.svc.CountUnreadNotifications(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, countResponse{Count: count})
}

// MarkNotificationRead handles PUT /notifications/{id}/read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid notification id"})
		return
	}
	notification, err := h.svc.MarkNotificationRead(r.Context(), userID, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, notification)
}

// MarkAllNotificationsRead handles PUT /notifications/read-all.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	updated, err := h.svc.MarkAllNotificationsRead(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, countResponse{Count: updated})
}

// DeleteNotification handles DELETE /notifications/{id}.
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid notification id"})
		return
	}
	if err := h.svc.DeleteNotification(r.Context(), userID, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

// EvaluateDueServices handles POST /notifications/evaluate. The app
// calls this on dashboard load so overdue services are caught even if
// the periodic job missed a window.
func (h *Handler) EvaluateDueServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	notifications, err := h.svc.EvaluateDueServices(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	h.respond(w, http.StatusOK, notifications)
}
