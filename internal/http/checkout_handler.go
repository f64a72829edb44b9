package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/salvatoluice/naswasoko-engine/internal/checkout"
	"github.com/salvatoluice/naswasoko-engine/internal/domain"
	"github.com/salvatoluice/naswasoko-engine/internal/payment"
)

type CheckoutHandler struct {
	session *checkout.Session
}

func NewCheckoutHandler(session *checkout.Session) *CheckoutHandler {
	return &CheckoutHandler{session: session}
}

type SetPaymentRequestDTO struct {
	Method domain.PaymentMethod `json:"method"`
}

// CheckoutStateDTO is the session state the UI renders after every
// operation.
type CheckoutStateDTO struct {
	State         string                  `json:"state"`
	Address       *domain.ShippingAddress `json:"address,omitempty"`
	PaymentMethod domain.PaymentMethod    `json:"payment_method"`
	PaymentChosen bool                    `json:"payment_chosen"`
	OrderPlaced   bool                    `json:"order_placed"`
	Order         *domain.Order           `json:"order,omitempty"`
}

func (h *CheckoutHandler) stateDTO() CheckoutStateDTO {
	dto := CheckoutStateDTO{
		State:       h.session.State().String(),
		OrderPlaced: h.session.OrderPlaced(),
	}
	dto.PaymentMethod, dto.PaymentChosen = h.session.PaymentMethod()
	if address, ok := h.session.Address(); ok {
		dto.Address = &address
	}
	if order, ok := h.session.Order(); ok {
		dto.Order = &order
	}
	return dto
}

func (h *CheckoutHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stateDTO())
}

func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	var address domain.ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Boundary validation: malformed addresses are rejected here and
	// never reach the session.
	if field, code, ok := validateAddress(address); !ok {
		respondError(w, http.StatusBadRequest, code, field)
		return
	}

	if err := h.session.SetShippingAddress(address); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_address", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.stateDTO())
}

func (h *CheckoutHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req SetPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.session.SetPaymentMethod(req.Method); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.stateDTO())
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.session.PlaceOrder(r.Context())
	switch {
	case err == nil:
		log.Printf("order %s placed total=%d request_id=%s", order.ID, order.Total, getRequestID(r.Context()))
		respondJSON(w, http.StatusCreated, order)
	case errors.Is(err, checkout.ErrMissingAddress):
		respondError(w, http.StatusConflict, "missing_address", "set a shipping address first")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
	case errors.Is(err, checkout.ErrPlacementInFlight):
		respondError(w, http.StatusConflict, "placement_in_flight", "an order placement is already in progress")
	case errors.Is(err, payment.ErrRefused):
		respondError(w, http.StatusBadGateway, "confirmation_refused", "payment confirmation was refused; cart is unchanged")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "confirmation_unavailable", "payment confirmation is temporarily unavailable")
	default:
		respondError(w, http.StatusBadGateway, "confirmation_failed", "order was not placed; cart is unchanged")
	}
}

func (h *CheckoutHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	respondJSON(w, http.StatusOK, h.stateDTO())
}
