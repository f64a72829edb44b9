package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
	"github.com/salvatoluice/naswasoko-engine/internal/storage"
)

// HistoryKey is the device storage key the order history lives under.
var HistoryKey = storage.Key("orders")

// History keeps the device-local record of placed orders, newest last.
type History struct {
	store storage.Store
}

func NewHistory(store storage.Store) *History {
	return &History{store: store}
}

// Record appends an order to the history.
func (h *History) Record(ctx context.Context, order domain.Order) error {
	orders, err := h.List(ctx)
	if err != nil {
		return err
	}

	orders = append(orders, order)
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal order history: %w", err)
	}
	if err := h.store.Put(ctx, HistoryKey, data); err != nil {
		return fmt.Errorf("save order history: %w", err)
	}
	return nil
}

// List returns all recorded orders. A missing key is an empty history,
// not an error.
func (h *History) List(ctx context.Context) ([]domain.Order, error) {
	data, err := h.store.Get(ctx, HistoryKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("unmarshal order history: %w", err)
	}
	return orders, nil
}
