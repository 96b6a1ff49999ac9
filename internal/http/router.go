package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the HTTP surface. The health endpoint sits outside
// the tenant guard so probes carry no headers; everything under /api/v1
// requires an owner identity.
func NewRouter(
	cartHandler *CartHandler,
	checkoutHandler *CheckoutHandler,
	productHandler *ProductHandler,
	salesHandler *SalesHandler,
	requestTimeout time.Duration,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(TenantMiddleware)

		r.Get("/products", productHandler.ListProducts)
		r.Get("/sales", salesHandler.ListSales)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
				r.Post("/items/{product_id}/increment", cartHandler.Increment)
				r.Post("/items/{product_id}/decrement", cartHandler.Decrement)
			})

			r.Post("/checkout", checkoutHandler.Checkout)
		})
	})

	return r
}
