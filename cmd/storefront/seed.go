package main

import (
	"time"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

// seedProducts is the initial catalog loaded on first start. Prices are
// whole KES.
func seedProducts() []domain.Product {
	now := time.Now().UTC()
	return []domain.Product{
		{ID: 1, Name: "Kiondo basket", Description: "Handwoven sisal basket", Category: "accessories", Price: 5000, CreatedAt: now},
		{ID: 2, Name: "Maasai shuka", Description: "Red checked cotton wrap", Category: "textiles", Price: 4000, DiscountPrice: 3000, CreatedAt: now},
		{ID: 3, Name: "Soapstone bowl", Description: "Hand-carved Kisii soapstone bowl", Category: "homeware", Price: 2500, CreatedAt: now},
		{ID: 4, Name: "Akala sandals", Description: "Recycled tyre-sole sandals", Category: "accessories", Price: 1500, CreatedAt: now},
		{ID: 5, Name: "Kikoy beach towel", Description: "Woven cotton kikoy", Category: "textiles", Price: 2800, DiscountPrice: 2200, CreatedAt: now},
		{ID: 6, Name: "Ankara tote bag", Description: "Bold-print canvas tote", Category: "accessories", Price: 3200, CreatedAt: now},
		{ID: 7, Name: "Beaded coaster set", Description: "Set of six beaded coasters", Category: "homeware", Price: 1800, DiscountPrice: 1400, CreatedAt: now},
		{ID: 8, Name: "Batik wall hanging", Description: "Hand-dyed batik print", Category: "homeware", Price: 6500, CreatedAt: now},
	}
}
