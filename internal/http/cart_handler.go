package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/NEXESMISSION/KESTI-sub001/internal/cart"
	"github.com/NEXESMISSION/KESTI-sub001/internal/catalog"
	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ProductGetter is the slice of the catalog service the cart handler
// needs to snapshot products into cart lines. Lookups are owner-scoped
// so one tenant can never price another tenant's product into a cart.
type ProductGetter interface {
	GetProduct(ctx context.Context, ownerID string, id int64) (*domain.Product, error)
}

type CartHandler struct {
	store   *cart.Store
	catalog ProductGetter
}

func NewCartHandler(store *cart.Store, catalog ProductGetter) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalog,
	}
}

// Quantity fields arrive as strings: they are draft input mirrored from a
// text field, committed to the cart only once they parse to a sane
// number. A lone "." mid-keystroke is a 400, not a NaN in a line total.
type AddItemRequestDTO struct {
	ProductID    int64  `json:"product_id"`
	Quantity     string `json:"quantity"`
	UnitQuantity string `json:"unit_quantity,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity     string `json:"quantity"`
	UnitQuantity string `json:"unit_quantity,omitempty"`
}

// parseQuantity commits a draft order count. Empty input is an error
// here (AddItem applies its default of 1 before calling); anything else
// must be a positive integer, or zero when zeroOK, which callers map to
// removal.
func parseQuantity(s string, zeroOK bool) (int, error) {
	if s == "" {
		return 0, errors.New("quantity is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("quantity must be an integer")
	}
	if n < 0 || (n == 0 && !zeroOK) {
		return 0, errors.New("quantity must be greater than 0")
	}
	return n, nil
}

// parseUnitQuantity commits a draft per-order amount. Empty means "not
// provided" and returns nil so the cart keeps or defaults the value.
func parseUnitQuantity(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.New("unit_quantity must be a finite number")
	}
	if v <= 0 {
		return nil, errors.New("unit_quantity must be greater than 0")
	}
	return &v, nil
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())
	tenant, ok := tenantFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing owner identity")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	quantity := 1
	if req.Quantity != "" {
		var err error
		quantity, err = parseQuantity(req.Quantity, false)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
			return
		}
	}

	unitQuantity, err := parseUnitQuantity(req.UnitQuantity)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_unit_quantity", err.Error())
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), tenant.OwnerID, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}

	h.store.Add(sessionID, *product, quantity, unitQuantity)
	respondJSON(w, http.StatusCreated, h.store.View(sessionID))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.store.View(sessionID))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Zero is allowed here: it removes the line.
	quantity, err := parseQuantity(req.Quantity, true)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
		return
	}

	unitQuantity, err := parseUnitQuantity(req.UnitQuantity)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_unit_quantity", err.Error())
		return
	}

	h.store.UpdateQuantity(sessionID, productID, quantity, unitQuantity)
	respondJSON(w, http.StatusOK, h.store.View(sessionID))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.store.Remove(sessionID, productID)
	respondJSON(w, http.StatusOK, h.store.View(sessionID))
}

func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.store.Increment(sessionID, productID)
	respondJSON(w, http.StatusOK, h.store.View(sessionID))
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.store.Decrement(sessionID, productID)
	respondJSON(w, http.StatusOK, h.store.View(sessionID))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())
	h.store.Clear(sessionID)
	respondJSON(w, http.StatusOK, h.store.View(sessionID))
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
