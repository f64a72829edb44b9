package domain

// LineItem is one row in the cart. ID identifies the cart entry and is
// generated at insertion time; ProductID identifies the product it was
// created from. Prices are whole currency units (KES has no sub-unit).
type LineItem struct {
	ID                string `json:"id"`
	ProductID         int64  `json:"product_id"`
	Name              string `json:"name"`
	UnitPrice         int64  `json:"unit_price"`
	DiscountUnitPrice int64  `json:"discount_unit_price,omitempty"` // 0 means no discount
	Quantity          int    `json:"quantity"`
	ImageURL          string `json:"image_url,omitempty"`
}

// EffectiveUnitPrice returns the price used for totals: the discounted
// price when one is set, the list price otherwise. The list price is kept
// for markdown display.
func (li LineItem) EffectiveUnitPrice() int64 {
	if li.DiscountUnitPrice > 0 {
		return li.DiscountUnitPrice
	}
	return li.UnitPrice
}

// Cart is the authoritative cart state. The four money fields are derived
// from Items and are recomputed after every mutation; Total is always
// Subtotal + ShippingFee + Tax.
type Cart struct {
	Items       []LineItem `json:"items"`
	Subtotal    int64      `json:"subtotal"`
	ShippingFee int64      `json:"shipping_fee"`
	Tax         int64      `json:"tax"`
	Total       int64      `json:"total"`
}
