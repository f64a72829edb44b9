// Package checkout owns the order-placement workflow: collecting a
// shipping address and payment method, then atomically converting the
// cart into an immutable order.
package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

// State is the session's position in the checkout flow.
type State string

const (
	StateCollecting State = "COLLECTING"
	StateHasAddress State = "HAS_ADDRESS"
	StateHasPayment State = "HAS_PAYMENT"
	StatePlacing    State = "PLACING"
	StatePlaced     State = "PLACED"
)

func (s State) String() string {
	return string(s)
}

// CartStore is the cart collaborator the session reads and clears.
type CartStore interface {
	Snapshot() domain.Cart
	Clear()
}

// Confirmer performs the asynchronous backend confirmation PlaceOrder
// awaits before committing an order.
type Confirmer interface {
	Confirm(ctx context.Context, order *domain.Order) error
}

// Recorder receives each placed order, e.g. for device-local history.
type Recorder interface {
	Record(ctx context.Context, order domain.Order) error
}

// Session collects checkout state and produces at most one order per
// cart snapshot. A payment method is always defined: mobile wallet is
// pre-selected, and PaymentChosen distinguishes the default from an
// explicit user selection.
type Session struct {
	cart      CartStore
	confirmer Confirmer
	recorder  Recorder // optional

	mu            sync.Mutex
	address       *domain.ShippingAddress
	payment       domain.PaymentMethod
	paymentChosen bool
	order         *domain.Order
	placing       bool
	placed        bool
}

func NewSession(cart CartStore, confirmer Confirmer, recorder Recorder) *Session {
	return &Session{
		cart:      cart,
		confirmer: confirmer,
		recorder:  recorder,
		payment:   domain.PaymentMobileWallet,
	}
}

// SetShippingAddress validates the address structurally and stores it.
// Format validation (phone, email) belongs to the form layer and is not
// repeated here.
func (s *Session) SetShippingAddress(a domain.ShippingAddress) error {
	if !a.Complete() {
		return ErrIncompleteAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = &a
	return nil
}

// SetPaymentMethod records the user's selection.
func (s *Session) SetPaymentMethod(m domain.PaymentMethod) error {
	if !m.Valid() {
		return ErrInvalidPaymentMethod
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = m
	s.paymentChosen = true
	return nil
}

// PlaceOrder converts the current cart into an order. It fails without
// touching the cart when no address is set, the cart is empty, another
// placement is in flight, or the confirmation round trip fails; on any
// failure the session stays in its pre-call state so the caller can
// retry cleanly. On success the order is stored, the cart is cleared,
// and the session reaches its terminal state.
func (s *Session) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	s.mu.Lock()
	if s.placing {
		s.mu.Unlock()
		return nil, ErrPlacementInFlight
	}
	if s.address == nil {
		s.mu.Unlock()
		return nil, ErrMissingAddress
	}

	snapshot := s.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		Items:           snapshot.Items,
		Subtotal:        snapshot.Subtotal,
		ShippingFee:     snapshot.ShippingFee,
		Tax:             snapshot.Tax,
		Total:           snapshot.Total,
		PaymentMethod:   s.payment,
		ShippingAddress: *s.address,
		CreatedAt:       time.Now().UTC(),
	}
	s.placing = true
	s.mu.Unlock()

	// The await window: the in-flight flag holds until confirmation
	// resolves, so a second PlaceOrder is rejected rather than racing.
	err := s.confirmer.Confirm(ctx, order)

	s.mu.Lock()
	s.placing = false
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("order not placed: %w", err)
	}

	s.order = order
	s.placed = true
	s.mu.Unlock()

	// Clearing the cart is part of the same logical transaction: it
	// happens only after the order is committed above.
	s.cart.Clear()

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, *order); err != nil {
			log.Printf("order history record error: %v", err)
		}
	}

	return order, nil
}

// Reset clears the address, placed flag, and current order, returning
// the session to the collecting state for a new checkout. The payment
// method falls back to the pre-selected default.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = nil
	s.payment = domain.PaymentMobileWallet
	s.paymentChosen = false
	s.order = nil
	s.placing = false
	s.placed = false
}

// State derives the session's position from what has been collected.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.placed:
		return StatePlaced
	case s.placing:
		return StatePlacing
	case s.address != nil && s.paymentChosen:
		return StateHasPayment
	case s.address != nil:
		return StateHasAddress
	default:
		return StateCollecting
	}
}

// Address returns the stored shipping address, if set.
func (s *Session) Address() (domain.ShippingAddress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.address == nil {
		return domain.ShippingAddress{}, false
	}
	return *s.address, true
}

// PaymentMethod returns the active method and whether the user chose it
// explicitly (false means the pre-selected default is still active).
func (s *Session) PaymentMethod() (domain.PaymentMethod, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment, s.paymentChosen
}

// Order returns a copy of the placed order, if any. The copy's items
// are independent of the session's record.
func (s *Session) Order() (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		return domain.Order{}, false
	}
	order := *s.order
	order.Items = make([]domain.LineItem, len(s.order.Items))
	copy(order.Items, s.order.Items)
	return order, true
}

// OrderPlaced reports whether this session has produced an order.
func (s *Session) OrderPlaced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placed
}
