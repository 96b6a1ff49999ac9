package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NEXESMISSION/KESTI-sub001/internal/cart"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() http.Handler {
	store := cart.NewStore()
	return NewRouter(
		NewCartHandler(store, catalogMock{}),
		NewCheckoutHandler(&checkoutMock{}),
		NewProductHandler(listerMock{}),
		NewSalesHandler(listerMock{}),
		time.Second,
	)
}

// Liveness probes carry no identity headers, so /health must answer
// before the tenant guard kicks in.
func TestRouter_HealthNeedsNoHeaders(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestRouter_APIRequiresOwner(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/products", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRouter_APIServesWithOwner(t *testing.T) {
	router := newTestRouter()

	request := httptest.NewRequest("GET", "/api/v1/products", nil)
	request.Header.Set("X-Owner-ID", "o1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_CartRequiresSession(t *testing.T) {
	router := newTestRouter()

	request := httptest.NewRequest("GET", "/api/v1/cart", nil)
	request.Header.Set("X-Owner-ID", "o1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
