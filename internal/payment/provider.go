package payment

import (
	"context"

	"github.com/nyc-burger-co/kiosk-api/internal/pricing"
)

// Card carries the raw payment form fields. The checkout core treats these
// as opaque; validation is the gateway's responsibility.
type Card struct {
	Number string `json:"number" validate:"required,credit_card"`
	Name   string `json:"name" validate:"required"`
	Expiry string `json:"expiry" validate:"required,len=5"`
	CVC    string `json:"cvc" validate:"required,numeric,min=3,max=4"`
}

// Request captures a single payment submission. Amount must equal the total
// of the order snapshot active at submission time.
type Request struct {
	SessionID string
	Amount    pricing.Money
	Card      Card
}

// Result is the gateway's verdict for one submission. A declined payment is
// a Result with Success false, not an error; errors are reserved for the
// call itself failing (cancelled context, unreachable provider).
type Result struct {
	Success       bool
	Reference     string
	FailureReason string
}

// Provider abstracts the upstream payment processor. Implementations must
// resolve exactly once per submission and be safe to retry.
type Provider interface {
	Submit(ctx context.Context, req Request) (Result, error)
}
