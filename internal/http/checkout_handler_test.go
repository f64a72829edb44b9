package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

func testAddressDTO() domain.ShippingAddress {
	return domain.ShippingAddress{
		FirstName:  "Wanjiku",
		LastName:   "Kamau",
		Address:    "Moi Avenue 12",
		City:       "Nairobi",
		County:     "Nairobi",
		PostalCode: "00100",
		Phone:      "0712345678",
		Email:      "wanjiku@example.com",
	}
}

func TestGetCheckoutState_Initial(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/checkout", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[CheckoutStateDTO](t, resp)
	assert.Equal(t, "COLLECTING", state.State)
	assert.Equal(t, domain.PaymentMobileWallet, state.PaymentMethod)
	assert.False(t, state.PaymentChosen)
	assert.False(t, state.OrderPlaced)
	assert.Nil(t, state.Address)
	assert.Nil(t, state.Order)
}

func TestSetAddress(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/address", testAddressDTO())

	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[CheckoutStateDTO](t, resp)
	assert.Equal(t, "HAS_ADDRESS", state.State)
	require.NotNil(t, state.Address)
	assert.Equal(t, "Nairobi", state.Address.City)
}

func TestSetAddress_RejectsBadPhone(t *testing.T) {
	srv, _, _ := setupServer(t)

	a := testAddressDTO()
	a.Phone = "12345"
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/address", a)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "invalid_phone", body.Code)
}

func TestSetAddress_RejectsBadEmail(t *testing.T) {
	srv, _, _ := setupServer(t)

	a := testAddressDTO()
	a.Email = "not-an-email"
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/address", a)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "invalid_email", body.Code)
}

func TestSetAddress_RejectsMissingField(t *testing.T) {
	srv, _, _ := setupServer(t)

	a := testAddressDTO()
	a.County = ""
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/address", a)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "missing_field", body.Code)
	assert.Equal(t, "county", body.Details)
}

func TestSetPayment(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/payment",
		SetPaymentRequestDTO{Method: domain.PaymentBankTransfer})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[CheckoutStateDTO](t, resp)
	assert.Equal(t, domain.PaymentBankTransfer, state.PaymentMethod)
	assert.True(t, state.PaymentChosen)
}

func TestSetPayment_RejectsUnknownMethod(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/payment",
		SetPaymentRequestDTO{Method: "cheque"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlaceOrder_WithoutAddress(t *testing.T) {
	srv, store, _ := setupServer(t)
	store.AddItem(testCartCandidate())

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout/order", nil)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "missing_address", body.Code)
	// Precondition failures leave the cart untouched.
	assert.Equal(t, 1, store.Len())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	srv, _, _ := setupServer(t)
	doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/address", testAddressDTO())

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout/order", nil)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "empty_cart", body.Code)
}

func TestPlaceOrder_FullFlow(t *testing.T) {
	srv, store, _ := setupServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})
	doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 2, Quantity: 2})
	doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/address", testAddressDTO())
	doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/payment", SetPaymentRequestDTO{Method: domain.PaymentCard})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout/order", nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[domain.Order](t, resp)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, int64(12760), order.Total)
	assert.Equal(t, domain.PaymentCard, order.PaymentMethod)

	// Cart cleared, session terminal.
	assert.Equal(t, 0, store.Len())
	state := decode[CheckoutStateDTO](t, doJSON(t, http.MethodGet, srv.URL+"/api/v1/checkout", nil))
	assert.Equal(t, "PLACED", state.State)
	assert.True(t, state.OrderPlaced)
}

func TestResetCheckout(t *testing.T) {
	srv, store, _ := setupServer(t)
	store.AddItem(testCartCandidate())
	doJSON(t, http.MethodPut, srv.URL+"/api/v1/checkout/address", testAddressDTO())
	doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout/order", nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout/reset", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[CheckoutStateDTO](t, resp)
	assert.Equal(t, "COLLECTING", state.State)
	assert.False(t, state.OrderPlaced)
	assert.Nil(t, state.Order)
}
