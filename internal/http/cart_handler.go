package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salvatoluice/naswasoko-engine/internal/cart"
	"github.com/salvatoluice/naswasoko-engine/internal/catalog"
	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

// ProductGetter resolves a product id to catalog data when adding to the
// cart, so clients cannot invent their own prices.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type CartHandler struct {
	store    *cart.Store
	products ProductGetter
}

func NewCartHandler(store *cart.Store, products ProductGetter) *CartHandler {
	return &CartHandler{
		store:    store,
		products: products,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.products.GetProduct(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "product_not_found", "no such product")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "catalog_error", "failed to resolve product")
		return
	}

	item := h.store.AddItem(cart.Candidate{
		ProductID:         product.ID,
		Name:              product.Name,
		UnitPrice:         product.Price,
		DiscountUnitPrice: product.DiscountPrice,
		Quantity:          req.Quantity,
		ImageURL:          product.ImageURL,
	})

	respondJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	if !h.store.UpdateQuantity(id, req.Quantity) {
		respondError(w, http.StatusNotFound, "item_not_found", "no cart item with that id")
		return
	}

	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.store.RemoveItem(id) {
		respondError(w, http.StatusNotFound, "item_not_found", "no cart item with that id")
		return
	}

	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	respondJSON(w, http.StatusNoContent, nil)
}
