package domain

import "time"

// Product is a catalog entry. DiscountPrice is 0 when the product is not
// on markdown; when set it must be below Price.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         int64     `json:"price"`
	DiscountPrice int64     `json:"discount_price,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
