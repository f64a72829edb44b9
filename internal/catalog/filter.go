package catalog

import (
	"sort"
	"strings"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

type Sort string

const (
	SortDefault   Sort = ""
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortName      Sort = "name"
)

// Valid reports whether s is a supported sort order.
func (s Sort) Valid() bool {
	switch s {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortName:
		return true
	}
	return false
}

// Filter narrows and orders a product view. Zero values mean "no
// constraint".
type Filter struct {
	Category string
	Query    string // case-insensitive match on name or description
	Sort     Sort
}

// effectivePrice is what the customer pays, so filters and sorting use
// the discounted price when one is set.
func effectivePrice(p domain.Product) int64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// Apply derives a filtered, sorted view. The input slice is never
// modified; the result is an independent copy.
func Apply(products []domain.Product, f Filter) []domain.Product {
	view := make([]domain.Product, 0, len(products))
	query := strings.ToLower(f.Query)

	for _, p := range products {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		view = append(view, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return effectivePrice(view[i]) < effectivePrice(view[j])
		})
	case SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return effectivePrice(view[i]) > effectivePrice(view[j])
		})
	case SortName:
		sort.SliceStable(view, func(i, j int) bool {
			return strings.ToLower(view[i].Name) < strings.ToLower(view[j].Name)
		})
	}

	return view
}
