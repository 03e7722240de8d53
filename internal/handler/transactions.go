package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/service"
)

type createTransactionRequest struct {
	ProductID       int64                  `json:"product_id"`
	Type            models.TransactionType `json:"type"`
	TransactionDate string                 `json:"transaction_date"` // YYYY-MM-DD
	Category        string                 `json:"category"`
	Description     string                 `json:"description"`
	Amount          decimal.Decimal        `json:"amount"`
}

// CreateTransaction handles POST /transactions.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createTransactionRequest
	if !h.decode(w, r, &req) {
		return
	}

	transactionDate, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "transaction_date must be YYYY-MM-DD"})
		return
	}

	transaction, err := h.svc.CreateTransaction(r.Context(), userID, service.CreateTransactionParams{
		ProductID:       req.ProductID,
		Type:            req.Type,
		TransactionDate: transactionDate,
		Category:        req.Category,
		Description:     req.Description,
		Amount:          req.Amount,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, transaction)
}

// ListProductTransactions handles GET /transactions/product/{id}.
func (h *Handler) ListProductTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	productID, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	transactions, err := h.svc.ListTransactions(r.Context(), userID, productID, limit, offset)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, transactions)
}

// DashboardSummary handles GET /dashboard/summary.
func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.GetDashboardSummary(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, summary)
}
