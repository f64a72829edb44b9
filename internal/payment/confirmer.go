// Package payment simulates the backend confirmation round trip that
// order placement awaits. A real gateway integration would sit behind
// the same Confirmer shape.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

// ErrRefused marks a confirmation the backend declined. The order is not
// created and the cart is left untouched; the caller may retry.
var ErrRefused = errors.New("payment confirmation refused")

// StatusSource decides the outcome of a confirmation attempt.
type StatusSource interface {
	Status() (ok bool, reason string)
}

// RandomStatus refuses roughly 5% of confirmations.
type RandomStatus struct{}

func (RandomStatus) Status() (bool, string) {
	if rand.Intn(100) < 95 {
		return true, ""
	}
	return false, "declined by issuer"
}

// AlwaysApprove accepts every confirmation. Used when the engine runs
// without a simulated failure rate.
type AlwaysApprove struct{}

func (AlwaysApprove) Status() (bool, string) { return true, "" }

// Gateway confirms orders with simulated latency. Consecutive backend
// failures trip a circuit breaker so a flapping backend fails fast
// instead of holding every placement for the full latency window.
type Gateway struct {
	source  StatusSource
	latency time.Duration
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewGateway(source StatusSource, latency time.Duration) *Gateway {
	return &Gateway{
		source:  source,
		latency: latency,
		breaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:    "payment-confirm",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Confirm simulates the backend round trip for an order. It blocks for
// the configured latency (or until ctx is done) before resolving.
func (g *Gateway) Confirm(ctx context.Context, order *domain.Order) error {
	_, err := g.breaker.Execute(func() (struct{}, error) {
		if g.latency > 0 {
			timer := time.NewTimer(g.latency)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return struct{}{}, ctx.Err()
			}
		}

		if ok, reason := g.source.Status(); !ok {
			return struct{}{}, fmt.Errorf("%w: %s", ErrRefused, reason)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("confirm order %s: %w", order.ID, err)
	}
	return nil
}
