package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
	"github.com/google/uuid"
)

type CheckoutService interface {
	Checkout(ctx context.Context, tenant domain.Tenant, sessionID, idempotencyKey string) (*domain.Sale, error)
}

type CheckoutHandler struct {
	service CheckoutService
}

func NewCheckoutHandler(service CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type CheckoutRequestDTO struct {
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

type CheckoutResponseDTO struct {
	Status string       `json:"status"`
	Sale   *domain.Sale `json:"sale,omitempty"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing owner identity")
		return
	}
	sessionID := sessionFromContext(r.Context())

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.New().String()
	}

	sale, err := h.service.Checkout(r.Context(), tenant, sessionID, req.IdempotencyKey)
	if err != nil {
		log.Printf("checkout failed for session %s: %v", sessionID, err)
		respondError(w, http.StatusInternalServerError, "checkout_failed", "checkout failed, please try again")
		return
	}

	if sale == nil {
		respondJSON(w, http.StatusOK, CheckoutResponseDTO{Status: "empty_cart"})
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		Status: "completed",
		Sale:   sale,
	})
}
