package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DeclineTestCard is always declined by the simulator, mirroring the card
// networks' standard decline test number.
const DeclineTestCard = "4000000000000002"

// Simulator stands in for a real payment processor. It validates the card
// fields, sleeps for the configured processing latency, and then approves
// everything except the decline test card and expired cards.
type Simulator struct {
	Latency time.Duration
	Now     func() time.Time

	validate *validator.Validate
}

// NewSimulator returns a simulator with the given processing latency.
func NewSimulator(latency time.Duration) *Simulator {
	return &Simulator{
		Latency:  latency,
		validate: validator.New(),
	}
}

// Submit implements Provider.
func (s *Simulator) Submit(ctx context.Context, req Request) (Result, error) {
	if req.Amount <= 0 {
		return Result{FailureReason: "amount must be positive"}, nil
	}
	if err := s.validator().Struct(req.Card); err != nil {
		return Result{FailureReason: "invalid card details"}, nil
	}
	if expired, ok := cardExpired(req.Card.Expiry, s.now()); !ok {
		return Result{FailureReason: "invalid card details"}, nil
	} else if expired {
		return Result{FailureReason: "card expired"}, nil
	}

	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}

	if strings.ReplaceAll(req.Card.Number, " ", "") == DeclineTestCard {
		return Result{FailureReason: "card declined"}, nil
	}
	return Result{
		Success:   true,
		Reference: "pay_" + uuid.NewString(),
	}, nil
}

func (s *Simulator) validator() *validator.Validate {
	if s.validate == nil {
		s.validate = validator.New()
	}
	return s.validate
}

func (s *Simulator) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// cardExpired parses an MM/YY expiry and compares it against now. The card
// stays valid through the last day of its expiry month.
func cardExpired(expiry string, now time.Time) (expired, ok bool) {
	var month, year int
	if _, err := fmt.Sscanf(expiry, "%02d/%02d", &month, &year); err != nil {
		return false, false
	}
	if month < 1 || month > 12 {
		return false, false
	}
	end := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return !now.Before(end), true
}
