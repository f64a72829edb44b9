package checkout

import "errors"

var (
	// ErrMissingAddress is returned by PlaceOrder before a shipping
	// address has been set.
	ErrMissingAddress = errors.New("shipping address not set")

	// ErrEmptyCart is returned when placement is attempted on an empty
	// cart; the session never creates a zero-item order.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrPlacementInFlight rejects a second PlaceOrder while the first
	// is still awaiting confirmation.
	ErrPlacementInFlight = errors.New("order placement already in progress")

	// ErrIncompleteAddress rejects an address with empty mandatory
	// fields.
	ErrIncompleteAddress = errors.New("shipping address has empty mandatory fields")

	// ErrInvalidPaymentMethod rejects a method outside the supported
	// set.
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
)
