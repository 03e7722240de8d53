package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/finanzas-app/finanzas-service/internal/integrations/rates"
	"github.com/finanzas-app/finanzas-service/internal/middleware"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
	"github.com/finanzas-app/finanzas-service/internal/service"
)

const maxBodySize = 1 << 20 // 1 MiB

type Handler struct {
	svc   *service.Service
	rates *rates.Client
	log   *logrus.Logger
}

func NewHandler(svc *service.Service, ratesClient *rates.Client, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, rates: ratesClient, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorf("Response encoding failed: %v", err)
	}
}

// respondError maps domain errors to HTTP statuses: not-found to 404,
// double payment to 409, parameter validation to 400.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var (
		paramsErr    *scheduler.InvalidCreditParametersError
		frequencyErr *scheduler.InvalidFrequencyError
		dayErr       *scheduler.InvalidPaymentDayError
	)
	switch {
	case errors.Is(err, scheduler.ErrNotFound):
		h.respond(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, scheduler.ErrAlreadyPaid):
		h.respond(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &paramsErr), errors.As(err, &frequencyErr), errors.As(err, &dayErr):
		h.respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		h.respond(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		h.respond(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrValidation):
		h.respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.log.Errorf("Request failed: %v", err)
		h.respond(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		h.respond(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	}
	return id, ok
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
