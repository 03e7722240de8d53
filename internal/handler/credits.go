package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/service"
)

type createCreditRequest struct {
	ProductID         int64           `json:"product_id"`
	PurchaseDate      string          `json:"purchase_date"` // YYYY-MM-DD
	Description       string          `json:"description"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	TotalInstallments int             `json:"total_installments"`
}

type creditResponse struct {
	Credit       *models.Credit       `json:"credit"`
	Installments []models.Installment `json:"installments"`
}

// CreateCredit handles POST /credits. The credit and its full
// installment plan are stored in one transaction.
func (h *Handler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createCreditRequest
	if !h.decode(w, r, &req) {
		return
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "purchase_date must be YYYY-MM-DD"})
		return
	}

	credit, installments, err := h.svc.CreateCredit(r.Context(), userID, service.CreateCreditParams{
		ProductID:         req.ProductID,
		PurchaseDate:      purchaseDate,
		Description:       req.Description,
		TotalAmount:       req.TotalAmount,
		TotalInstallments: req.TotalInstallments,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, creditResponse{Credit: credit, Installments: installments})
}

// ListProductCredits handles GET /credits/product/{id}.
func (h *Handler) ListProductCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	productID, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}
	credits, err := h.svc.ListCredits(r.Context(), userID, productID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, credits)
}

// ListCreditInstallments handles GET /credits/{id}/installments.
func (h *Handler) ListCreditInstallments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	creditID, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid credit id"})
		return
	}
	installments, err := h.svc.ListInstallments(r.Context(), userID, creditID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, installments)
}

// PayInstallment handles POST /installments/{id}/pay. Paying twice
// answers 409.
func (h *Handler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	installmentID, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid installment id"})
		return
	}
	installment, err := h.svc.MarkInstallmentPaid(r.Context(), userID, installmentID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, installment)
}

// ListPendingInstallments handles GET /installments/pending.
func (h *Handler) ListPendingInstallments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	installments, err := h.svc.ListPendingInstallments(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, installments)
}
