// Package cart owns the authoritative cart state. Totals are recomputed
// inside the same critical section as every structural change, so callers
// never observe totals out of sync with items.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
	"github.com/salvatoluice/naswasoko-engine/internal/pricing"
	"github.com/salvatoluice/naswasoko-engine/internal/storage"
)

// StorageKey is the device storage key the cart persists under.
var StorageKey = storage.Key("cart")

const saveTimeout = time.Second

// Candidate is a line item to add, before the store assigns an entry id.
type Candidate struct {
	ProductID         int64
	Name              string
	UnitPrice         int64
	DiscountUnitPrice int64
	Quantity          int
	ImageURL          string
}

// Store maintains the cart and keeps its totals in sync with its items.
// The zero value is not usable; construct with New.
type Store struct {
	mu      sync.RWMutex
	policy  pricing.Policy
	items   []domain.LineItem
	totals  pricing.Totals
	storage storage.Store // optional; best-effort persistence
}

// New creates an empty cart store. When device storage is provided, a
// previously saved cart is restored from it.
func New(policy pricing.Policy, store storage.Store) *Store {
	s := &Store{
		policy:  policy,
		storage: store,
	}
	s.restore()
	return s
}

// AddItem inserts or merges a candidate and returns the resulting line
// item. An existing entry for the same product has its quantity
// incremented rather than a duplicate row appended. Quantities below 1
// are clamped to 1, and a discount at or above the list price is
// dropped.
func (s *Store) AddItem(c Candidate) domain.LineItem {
	if c.Quantity < 1 {
		c.Quantity = 1
	}
	if c.DiscountUnitPrice >= c.UnitPrice {
		c.DiscountUnitPrice = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == c.ProductID {
			s.items[i].Quantity += c.Quantity
			s.recompute()
			return s.items[i]
		}
	}

	item := domain.LineItem{
		ID:                uuid.NewString(),
		ProductID:         c.ProductID,
		Name:              c.Name,
		UnitPrice:         c.UnitPrice,
		DiscountUnitPrice: c.DiscountUnitPrice,
		Quantity:          c.Quantity,
		ImageURL:          c.ImageURL,
	}
	s.items = append(s.items, item)
	s.recompute()
	return item
}

// UpdateQuantity sets the quantity on the matching entry and reports
// whether it was found. A quantity below 1 leaves the cart untouched:
// deletion goes through RemoveItem, not quantity edits.
func (s *Store) UpdateQuantity(id string, quantity int) bool {
	if quantity < 1 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.recompute()
			return true
		}
	}
	return false
}

// RemoveItem removes the matching entry and reports whether it was found.
func (s *Store) RemoveItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.recompute()
			return true
		}
	}
	return false
}

// Clear resets to the empty cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.recompute()
}

// Snapshot returns a deep copy of the current cart. Mutating the copy,
// or the store afterwards, affects neither the other.
func (s *Store) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)

	return domain.Cart{
		Items:       items,
		Subtotal:    s.totals.Subtotal,
		ShippingFee: s.totals.ShippingFee,
		Tax:         s.totals.Tax,
		Total:       s.totals.Total,
	}
}

// Totals returns the current derived totals.
func (s *Store) Totals() pricing.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals
}

// Len returns the number of line items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// recompute refreshes totals and saves the cart. Callers must hold mu.
func (s *Store) recompute() {
	s.totals = s.policy.Compute(s.items)
	s.save()
}

// save persists the cart to device storage. Persistence is a side
// effect: failures are logged, never surfaced to the mutating caller.
func (s *Store) save() {
	if s.storage == nil {
		return
	}

	cart := domain.Cart{
		Items:       s.items,
		Subtotal:    s.totals.Subtotal,
		ShippingFee: s.totals.ShippingFee,
		Tax:         s.totals.Tax,
		Total:       s.totals.Total,
	}
	data, err := json.Marshal(cart)
	if err != nil {
		log.Printf("cart marshal error: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.storage.Put(ctx, StorageKey, data); err != nil {
		log.Printf("cart save error: %v", err)
	}
}

func (s *Store) restore() {
	if s.storage == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	data, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("cart restore error: %v", err)
		}
		return
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("cart restore unmarshal error: %v", err)
		return
	}

	s.items = cart.Items
	// Recompute rather than trust stored totals; the policy may have
	// changed since the cart was saved.
	s.totals = s.policy.Compute(s.items)
}
