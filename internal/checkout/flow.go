package checkout

import "fmt"

// Step identifies a stage of the order flow.
type Step string

const (
	// StepHero is the landing stage before any customization.
	StepHero Step = "hero"
	// StepCustomize is where burgers and the menu duo are composed.
	StepCustomize Step = "customize"
	// StepReview shows the assembled order snapshot.
	StepReview Step = "review"
	// StepPayment collects and submits the card.
	StepPayment Step = "payment"
	// StepConfirmation is the terminal stage of a single order.
	StepConfirmation Step = "confirmation"
)

// TransitionError reports a step change the flow does not allow.
type TransitionError struct {
	From   Step
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("checkout: cannot %s from step %s", e.Action, e.From)
}

// Flow is the per-session step machine. Transitions happen only through
// the named methods; each one guards its expected source step so stages
// cannot be skipped in either direction.
type Flow struct {
	step Step
}

// NewFlow starts at the hero stage.
func NewFlow() Flow {
	return Flow{step: StepHero}
}

// Step returns the current stage.
func (f *Flow) Step() Step {
	return f.step
}

// StartCustomizing moves hero -> customize.
func (f *Flow) StartCustomizing() error {
	return f.advance("start customizing", StepHero, StepCustomize)
}

// ProceedToCheckout moves customize -> review, the point where the order
// snapshot is assembled.
func (f *Flow) ProceedToCheckout() error {
	return f.advance("proceed to checkout", StepCustomize, StepReview)
}

// ContinueToPayment moves review -> payment.
func (f *Flow) ContinueToPayment() error {
	return f.advance("continue to payment", StepReview, StepPayment)
}

// BackToReview moves payment -> review.
func (f *Flow) BackToReview() error {
	return f.advance("go back to review", StepPayment, StepReview)
}

// EditOrder moves review -> customize, abandoning the checkout attempt.
func (f *Flow) EditOrder() error {
	return f.advance("edit the order", StepReview, StepCustomize)
}

// ConfirmPayment moves payment -> confirmation. Only a successful gateway
// result may drive this.
func (f *Flow) ConfirmPayment() error {
	return f.advance("confirm payment", StepPayment, StepConfirmation)
}

// StartNewOrder moves confirmation -> customize for a fresh order.
func (f *Flow) StartNewOrder() error {
	return f.advance("start a new order", StepConfirmation, StepCustomize)
}

// GoHome moves confirmation -> hero.
func (f *Flow) GoHome() error {
	return f.advance("return home", StepConfirmation, StepHero)
}

func (f *Flow) advance(action string, from, to Step) error {
	if f.step != from {
		return &TransitionError{From: f.step, Action: action}
	}
	f.step = to
	return nil
}
