package http

import (
	"context"
	"net/http"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
)

type SaleLister interface {
	ListSalesByOwner(ctx context.Context, ownerID string) ([]*domain.Sale, error)
}

type SalesHandler struct {
	sales SaleLister
}

func NewSalesHandler(sales SaleLister) *SalesHandler {
	return &SalesHandler{sales: sales}
}

func (h *SalesHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing owner identity")
		return
	}

	list, err := h.sales.ListSalesByOwner(r.Context(), tenant.OwnerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list sales")
		return
	}
	if list == nil {
		list = []*domain.Sale{}
	}

	respondJSON(w, http.StatusOK, list)
}
