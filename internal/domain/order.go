package domain

import "time"

type PaymentMethod string

const (
	PaymentMobileWallet PaymentMethod = "mobile_wallet"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Valid reports whether m is one of the supported methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMobileWallet, PaymentCard, PaymentBankTransfer:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Order is the immutable record produced once per successful checkout.
// Items is a deep copy of the cart at placement time; later cart
// mutations never alias into an order.
type Order struct {
	ID              string          `json:"id"`
	Items           []LineItem      `json:"items"`
	Subtotal        int64           `json:"subtotal"`
	ShippingFee     int64           `json:"shipping_fee"`
	Tax             int64           `json:"tax"`
	Total           int64           `json:"total"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
}
