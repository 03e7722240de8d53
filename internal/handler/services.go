package handler

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/service"
)

type serviceRequest struct {
	ProductID   *int64                  `json:"product_id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Amount      decimal.Decimal         `json:"amount"`
	CurrencyID  int64                   `json:"currency_id"`
	Frequency   models.ServiceFrequency `json:"frequency"`
	PaymentDay  int                     `json:"payment_day"`
	PaymentType models.PaymentType      `json:"payment_type"`
	IsActive    *bool                   `json:"is_active"`
}

func (req serviceRequest) params() service.ServiceParams {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return service.ServiceParams{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		CurrencyID:  req.CurrencyID,
		Frequency:   req.Frequency,
		PaymentDay:  req.PaymentDay,
		PaymentType: req.PaymentType,
		IsActive:    active,
	}
}

// CreateService handles POST /services. The first due date is
// computed from the frequency and payment day.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req serviceRequest
	if !h.decode(w, r, &req) {
		return
	}

	created, err := h.svc.CreateRecurringService(r.Context(), userID, req.params())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, created)
}

// ListServices handles GET /services?is_active=.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var isActive *bool
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.respond(w, http.StatusBadRequest, errorResponse{Error: "is_active must be a boolean"})
			return
		}
		isActive = &v
	}
	services, err := h.svc.ListRecurringServices(r.Context(), userID, isActive)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, services)
}

// ListUpcomingServices handles GET /services/upcoming?days_ahead=.
func (h *Handler) ListUpcomingServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	daysAhead, _ := strconv.Atoi(r.URL.Query().Get("days_ahead"))
	services, err := h.svc.ListUpcomingServices(r.Context(), userID, daysAhead)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, services)
}

// GetService handles GET /services/{id}.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid service id"})
		return
	}
	svc, err := h.svc.GetRecurringService(r.Context(), userID, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, svc)
}

// UpdateService handles PUT /services/{id}.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid service id"})
		return
	}
	var req serviceRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateRecurringService(r.Context(), userID, id, req.params())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

// DeleteService handles DELETE /services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid service id"})
		return
	}
	if err := h.svc.DeleteRecurringService(r.Context(), userID, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}
