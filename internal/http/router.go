package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the engine's HTTP surface.
func NewRouter(carts *CartHandler, checkouts *CheckoutHandler, products *ProductHandler, orders *OrdersHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Delete("/", carts.ClearCart)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{id}", carts.UpdateQuantity)
			r.Delete("/items/{id}", carts.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkouts.GetState)
			r.Put("/address", checkouts.SetAddress)
			r.Put("/payment", checkouts.SetPayment)
			r.Post("/order", checkouts.PlaceOrder)
			r.Post("/reset", checkouts.Reset)
		})

		r.Get("/products", products.ListProducts)
		r.Get("/orders", orders.ListOrders)
	})

	return r
}
