// Package pricing derives the cart's monetary totals from its line items.
// The policy values are configuration, not rules baked into callers.
package pricing

import (
	"math"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

// Policy holds the storefront's pricing configuration. Money values are
// whole currency units.
type Policy struct {
	FreeShippingThreshold int64   // shipping is free strictly above this subtotal
	FlatShippingFee       int64   // charged at or below the threshold
	TaxRate               float64 // applied to subtotal only, never to shipping
}

// DefaultPolicy returns the standard storefront policy: free shipping
// above 10000, a 350 flat fee otherwise, 16% VAT.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: 10000,
		FlatShippingFee:       350,
		TaxRate:               0.16,
	}
}

// Totals is the derived money breakdown for a cart.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	Tax         int64 `json:"tax"`
	Total       int64 `json:"total"`
}

// Compute derives totals from items. It is pure and always succeeds; an
// empty item list yields all-zero totals. The discounted unit price wins
// over the list price when present. Tax is rounded half-up to the nearest
// whole unit.
func (p Policy) Compute(items []domain.LineItem) Totals {
	if len(items) == 0 {
		return Totals{}
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.EffectiveUnitPrice() * int64(item.Quantity)
	}

	shipping := p.FlatShippingFee
	if subtotal > p.FreeShippingThreshold {
		shipping = 0
	}

	tax := int64(math.Floor(float64(subtotal)*p.TaxRate + 0.5))

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Tax:         tax,
		Total:       subtotal + shipping + tax,
	}
}
