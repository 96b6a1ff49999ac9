package http

import (
	"context"
	"net/http"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
)

type ProductLister interface {
	ListProducts(ctx context.Context, ownerID string) ([]*domain.Product, error)
}

type ProductHandler struct {
	catalog ProductLister
}

func NewProductHandler(catalog ProductLister) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing owner identity")
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), tenant.OwnerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}
