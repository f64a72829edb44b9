package http

import (
	"context"
	"net/http"

	"github.com/salvatoluice/naswasoko-engine/internal/catalog"
	"github.com/salvatoluice/naswasoko-engine/internal/checkout"
	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

// ProductLister supplies the catalog the product view is derived from.
type ProductLister interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
}

type ProductHandler struct {
	products ProductLister
}

func NewProductHandler(products ProductLister) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sortOrder := catalog.Sort(r.URL.Query().Get("sort"))
	if !sortOrder.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_sort", "sort must be price_asc, price_desc or name")
		return
	}

	products, err := h.products.GetAllProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "catalog_error", "failed to load products")
		return
	}

	view := catalog.Apply(products, catalog.Filter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Sort:     sortOrder,
	})

	respondJSON(w, http.StatusOK, view)
}

type OrdersHandler struct {
	history *checkout.History
}

func NewOrdersHandler(history *checkout.History) *OrdersHandler {
	return &OrdersHandler{history: history}
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.history.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "history_error", "failed to load order history")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}
