package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvatoluice/naswasoko-engine/internal/cart"
	"github.com/salvatoluice/naswasoko-engine/internal/catalog"
	"github.com/salvatoluice/naswasoko-engine/internal/checkout"
	"github.com/salvatoluice/naswasoko-engine/internal/domain"
	"github.com/salvatoluice/naswasoko-engine/internal/payment"
	"github.com/salvatoluice/naswasoko-engine/internal/pricing"
	"github.com/salvatoluice/naswasoko-engine/internal/storage"
)

// mockCatalog implements ProductGetter and ProductLister from a fixed
// product list.
type mockCatalog struct {
	products []domain.Product
}

func (m *mockCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (m *mockCatalog) GetAllProducts(context.Context) ([]domain.Product, error) {
	return m.products, nil
}

func testCartCandidate() cart.Candidate {
	return cart.Candidate{ProductID: 1, Name: "Kiondo basket", UnitPrice: 5000, Quantity: 1}
}

func testCatalog() *mockCatalog {
	return &mockCatalog{products: []domain.Product{
		{ID: 1, Name: "Kiondo basket", Category: "accessories", Price: 5000},
		{ID: 2, Name: "Maasai shuka", Category: "textiles", Price: 4000, DiscountPrice: 3000},
	}}
}

// setupServer wires a full engine behind the router, the way main does.
func setupServer(t *testing.T) (*httptest.Server, *cart.Store, *checkout.Session) {
	t.Helper()

	store := cart.New(pricing.DefaultPolicy(), nil)
	session := checkout.NewSession(store, payment.NewGateway(payment.AlwaysApprove{}, 0), nil)
	cat := testCatalog()

	router := NewRouter(
		NewCartHandler(store, cat),
		NewCheckoutHandler(session),
		NewProductHandler(cat),
		NewOrdersHandler(checkout.NewHistory(nullStorage{})),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store, session
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAddItem(t *testing.T) {
	srv, store, _ := setupServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items",
		AddItemRequestDTO{ProductID: 1, Quantity: 2})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[domain.LineItem](t, resp)
	assert.Equal(t, int64(1), item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, int64(5000), item.UnitPrice)
	assert.Equal(t, 1, store.Len())
}

func TestAddItem_UnknownProduct(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items",
		AddItemRequestDTO{ProductID: 42, Quantity: 1})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items",
		AddItemRequestDTO{ProductID: 1, Quantity: 0})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "invalid_quantity", body.Code)
}

func TestGetCart_ReflectsTotals(t *testing.T) {
	srv, store, _ := setupServer(t)
	store.AddItem(cart.Candidate{ProductID: 1, Name: "Kiondo basket", UnitPrice: 5000, Quantity: 1})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[domain.Cart](t, resp)
	assert.Equal(t, int64(5000), got.Subtotal)
	assert.Equal(t, got.Subtotal+got.ShippingFee+got.Tax, got.Total)
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/items/nonexistent",
		UpdateQuantityRequestDTO{Quantity: 3})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemoveItem(t *testing.T) {
	srv, store, _ := setupServer(t)
	item := store.AddItem(cart.Candidate{ProductID: 1, Name: "Kiondo basket", UnitPrice: 5000, Quantity: 1})

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/cart/items/"+item.ID, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, store.Len())
}

func TestClearCart(t *testing.T) {
	srv, store, _ := setupServer(t)
	store.AddItem(cart.Candidate{ProductID: 1, Name: "Kiondo basket", UnitPrice: 5000, Quantity: 1})

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/cart", nil)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, store.Len())
}

func TestListProducts_FilterAndSort(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/products?sort=price_asc", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decode[[]domain.Product](t, resp)
	require.Len(t, products, 2)
	// Discounted shuka (3000) sorts before the basket (5000).
	assert.Equal(t, int64(2), products[0].ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products?sort=rating", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// nullStorage is an always-empty storage.Store.
type nullStorage struct{}

func (nullStorage) Get(context.Context, string) ([]byte, error) {
	return nil, storage.ErrNotFound
}
func (nullStorage) Put(context.Context, string, []byte) error { return nil }
func (nullStorage) Delete(context.Context, string) error      { return nil }
func (nullStorage) Close() error                              { return nil }
