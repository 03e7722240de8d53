package handler

import "net/http"

// ExchangeRates handles GET /exchange-rates.
func (h *Handler) ExchangeRates(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}
	rates, err := h.rates.GetDailyRates(r.Context())
	if err != nil {
		h.respond(w, http.StatusBadGateway, errorResponse{Error: "rates feed unavailable"})
		return
	}
	h.respond(w, http.StatusOK, rates)
}
