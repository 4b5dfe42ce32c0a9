package payment

import (
	"context"

	"github.com/nyc-burger-co/kiosk-api/internal/resilience"
)

// Resilient guards a provider with a circuit breaker so a misbehaving
// gateway sheds load fast instead of stacking up kiosks waiting on timeouts.
// A declined card is a normal outcome and never counts against the breaker;
// only transport-level errors do.
type Resilient struct {
	Provider Provider
	Breaker  *resilience.Breaker
}

// Submit implements Provider.
func (r Resilient) Submit(ctx context.Context, req Request) (Result, error) {
	if r.Breaker != nil && !r.Breaker.Allow(ctx) {
		return Result{}, resilience.ErrOpenCircuit
	}
	result, err := r.Provider.Submit(ctx, req)
	if r.Breaker != nil {
		r.Breaker.Report(ctx, err == nil)
	}
	return result, err
}
