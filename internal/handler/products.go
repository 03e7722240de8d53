package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/service"
)

type createInstitutionRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

// CreateInstitution handles POST /institutions.
func (h *Handler) CreateInstitution(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createInstitutionRequest
	if !h.decode(w, r, &req) {
		return
	}

	inst, err := h.svc.CreateInstitution(r.Context(), userID, req.Name, req.LogoURL)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, inst)
}

// ListInstitutions handles GET /institutions.
func (h *Handler) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	institutions, err := h.svc.ListInstitutions(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, institutions)
}

// DeleteInstitution handles DELETE /institutions/{id}.
func (h *Handler) DeleteInstitution(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid institution id"})
		return
	}
	if err := h.svc.DeleteInstitution(r.Context(), userID, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

type createProductRequest struct {
	InstitutionID int64              `json:"institution_id"`
	ProductType   models.ProductType `json:"product_type"`
	Identifier    string             `json:"identifier"`
	CurrencyID    int64              `json:"currency_id"`
	Balance       decimal.Decimal    `json:"balance"`
	PaymentDueDay *int               `json:"payment_due_day"`
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), userID, service.CreateProductParams{
		InstitutionID: req.InstitutionID,
		ProductType:   req.ProductType,
		Identifier:    req.Identifier,
		CurrencyID:    req.CurrencyID,
		Balance:       req.Balance,
		PaymentDueDay: req.PaymentDueDay,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, product)
}

// ListProducts handles GET /products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	products, err := h.svc.ListProducts(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}
	product, err := h.svc.GetProduct(r.Context(), userID, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), userID, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

type createCategoryRequest struct {
	Name  string              `json:"name"`
	Type  models.CategoryType `json:"type"`
	Emoji string              `json:"emoji"`
}

// CreateCategory handles POST /categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createCategoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), userID, req.Name, req.Type, req.Emoji)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, category)
}

// ListCategories handles GET /categories?type=.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var categoryType *models.CategoryType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := models.CategoryType(raw)
		categoryType = &t
	}
	categories, err := h.svc.ListCategories(r.Context(), userID, categoryType)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, categories)
}

// DeleteCategory handles DELETE /categories/{id}.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid category id"})
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), userID, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

type createCurrencyRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CreateCurrency handles POST /currencies.
func (h *Handler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}
	var req createCurrencyRequest
	if !h.decode(w, r, &req) {
		return
	}

	currency, err := h.svc.CreateCurrency(r.Context(), req.Code, req.Name, req.Symbol)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, currency)
}

// ListCurrencies handles GET /currencies.
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.svc.ListCurrencies(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, currencies)
}
