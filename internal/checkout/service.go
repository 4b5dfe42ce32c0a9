package checkout

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nyc-burger-co/kiosk-api/internal/burger"
	"github.com/nyc-burger-co/kiosk-api/internal/catalog"
	"github.com/nyc-burger-co/kiosk-api/internal/events"
	"github.com/nyc-burger-co/kiosk-api/internal/menuduo"
	"github.com/nyc-burger-co/kiosk-api/internal/order"
	"github.com/nyc-burger-co/kiosk-api/internal/payment"
	"github.com/nyc-burger-co/kiosk-api/internal/pricing"
)

// ErrPaymentPending rejects a payment submission while an earlier one for the
// same session has not resolved yet. This is the duplicate-charge guard: one
// in-flight submission per session, enforced in-process.
var ErrPaymentPending = errors.New("checkout: a payment is already being processed")

// Service orchestrates the full kiosk journey for every session: composing
// burgers, picking the menu duo, walking the checkout steps and settling
// payment. All state is process-local; the store is the only registry.
type Service struct {
	Store          *Store
	Prices         pricing.PriceList
	Catalog        catalog.Provider
	TaxBps         int
	BurgerName     string
	PickupEstimate string
	Gateway        payment.Provider
	Events         *events.Bus
	Log            zerolog.Logger

	// Now and OrderNumber are overridable for tests.
	Now         func() time.Time
	OrderNumber func() string
}

// CreateSession registers a fresh session at the hero stage.
func (s *Service) CreateSession(ctx context.Context) (State, error) {
	sess := &Session{
		ID:       uuid.NewString(),
		flow:     NewFlow(),
		composer: burger.NewComposer(s.Prices),
		duo:      menuduo.NewSelector(s.Catalog),
	}
	s.Store.Put(sess)
	s.emit(ctx, events.TopicSessionCreated, sess.ID, nil)
	s.Log.Info().Str("session_id", sess.ID).Msg("session created")
	return s.state(sess), nil
}

// State returns the full read-model for a session.
func (s *Service) State(_ context.Context, sessionID string) (State, error) {
	sess, err := s.Store.Get(sessionID)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.stateLocked(sess), nil
}

// AddBurger appends a default burger to the composition.
func (s *Service) AddBurger(_ context.Context, sessionID string) (State, error) {
	return s.mutate(sessionID, "add a burger", func(sess *Session) {
		sess.composer.Add()
	})
}

// RemoveBurger deletes one burger. Unknown ids are silent no-ops.
func (s *Service) RemoveBurger(_ context.Context, sessionID, burgerID string) (State, error) {
	return s.mutate(sessionID, "remove a burger", func(sess *Session) {
		sess.composer.Remove(burgerID)
	})
}

// AdjustPatties shifts a burger's patty count by delta, clamped to the menu
// range.
func (s *Service) AdjustPatties(_ context.Context, sessionID, burgerID string, delta int) (State, error) {
	return s.mutate(sessionID, "adjust patties", func(sess *Session) {
		sess.composer.AdjustPatties(burgerID, delta)
	})
}

// SetOnions sets a burger's onions topping.
func (s *Service) SetOnions(_ context.Context, sessionID, burgerID string, enabled bool) (State, error) {
	return s.mutate(sessionID, "set onions", func(sess *Session) {
		sess.composer.SetOnions(burgerID, enabled)
	})
}

// SetJalapenos sets a burger's jalapeños topping.
func (s *Service) SetJalapenos(_ context.Context, sessionID, burgerID string, enabled bool) (State, error) {
	return s.mutate(sessionID, "set jalapenos", func(sess *Session) {
		sess.composer.SetJalapenos(burgerID, enabled)
	})
}

// ResetBurgers clears the composition and restarts burger numbering.
func (s *Service) ResetBurgers(_ context.Context, sessionID string) (State, error) {
	return s.mutate(sessionID, "reset the composition", func(sess *Session) {
		sess.composer.Reset()
	})
}

// SetMenuDuo turns the bundle surcharge on or off. The side and drink
// selection is kept either way; only the flag moves.
func (s *Service) SetMenuDuo(_ context.Context, sessionID string, enabled bool) (State, error) {
	return s.mutate(sessionID, "toggle the menu duo", func(sess *Session) {
		sess.duoEnabled = enabled
	})
}

// ToggleSide flips one side in the menu-duo selection.
func (s *Service) ToggleSide(_ context.Context, sessionID, itemID string) (State, error) {
	return s.mutate(sessionID, "toggle a side", func(sess *Session) {
		sess.duo.ToggleSide(itemID)
	})
}

// ToggleDrink flips one drink in the menu-duo selection.
func (s *Service) ToggleDrink(_ context.Context, sessionID, itemID string) (State, error) {
	return s.mutate(sessionID, "toggle a drink", func(sess *Session) {
		sess.duo.ToggleDrink(itemID)
	})
}

// Quote recomputes the live price summary from the current composition. The
// breakdown presents one base burger plus an aggregate toppings price, but
// every figure derives from the same per-burger sum, so DisplayTotal always
// equals BurgersTotal + SidesTotal + the duo surcharge.
func (s *Service) Quote(_ context.Context, sessionID string) (Quote, error) {
	sess, err := s.Store.Get(sessionID)
	if err != nil {
		return Quote{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.quoteLocked(sess), nil
}

// BeginCheckout assembles the immutable order snapshot and moves the session
// to review. Assembly never fails: an empty composition produces a snapshot
// priced from sides and the duo surcharge alone.
func (s *Service) BeginCheckout(ctx context.Context, sessionID string) (State, error) {
	sess, err := s.Store.Get(sessionID)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.flow.ProceedToCheckout(); err != nil {
		return State{}, err
	}
	assembler := order.Assembler{BurgerName: s.BurgerName, TaxBps: s.TaxBps, Now: s.Now}
	snapshot := assembler.Assemble(
		sess.composer.LineItems(),
		sess.duoEnabled,
		s.Prices.MenuDuo,
		sess.duo.SelectedItems(),
	)
	sess.snapshot = &snapshot
	s.emit(ctx, events.TopicOrderCreated, sess.ID, map[string]any{
		"subtotal": snapshot.Subtotal,
		"tax":      snapshot.Tax,
		"total":    snapshot.Total,
	})
	return s.stateLocked(sess), nil
}

// ContinueToPayment moves review -> payment.
func (s *Service) ContinueToPayment(_ context.Context, sessionID string) (State, error) {
	return s.transition(sessionID, func(sess *Session) error {
		return sess.flow.ContinueToPayment()
	})
}

// BackToReview moves payment -> review, keeping the snapshot.
func (s *Service) BackToReview(_ context.Context, sessionID string) (State, error) {
	return s.transition(sessionID, func(sess *Session) error {
		return sess.flow.BackToReview()
	})
}

// EditOrder abandons the checkout attempt: review -> customize, snapshot
// discarded. The next checkout assembles a fresh one.
func (s *Service) EditOrder(_ context.Context, sessionID string) (State, error) {
	return s.transition(sessionID, func(sess *Session) error {
		if err := sess.flow.EditOrder(); err != nil {
			return err
		}
		sess.snapshot = nil
		return nil
	})
}

// SubmitPayment charges the active snapshot's total. The session lock is
// released for the gateway call so reads stay responsive, with the pending
// latch keeping a second submission out until this one resolves. A declined
// payment keeps the session at the payment step; a successful one advances to
// confirmation and builds the pickup payload.
func (s *Service) SubmitPayment(ctx context.Context, sessionID string, card payment.Card) (payment.Result, State, error) {
	sess, err := s.Store.Get(sessionID)
	if err != nil {
		return payment.Result{}, State{}, err
	}

	sess.mu.Lock()
	if step := sess.flow.Step(); step != StepPayment {
		sess.mu.Unlock()
		return payment.Result{}, State{}, &TransitionError{From: step, Action: "submit payment"}
	}
	if sess.paymentPending {
		sess.mu.Unlock()
		return payment.Result{}, State{}, ErrPaymentPending
	}
	sess.paymentPending = true
	amount := sess.snapshot.Total
	sess.mu.Unlock()

	result, err := s.Gateway.Submit(ctx, payment.Request{
		SessionID: sessionID,
		Amount:    amount,
		Card:      card,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.paymentPending = false

	if err != nil {
		s.emit(ctx, events.TopicPaymentFailed, sess.ID, map[string]any{"reason": err.Error()})
		return payment.Result{}, s.stateLocked(sess), err
	}
	if !result.Success {
		s.emit(ctx, events.TopicPaymentFailed, sess.ID, map[string]any{"reason": result.FailureReason})
		return result, s.stateLocked(sess), nil
	}

	if err := sess.flow.ConfirmPayment(); err != nil {
		// The flow moved while the gateway was settling. Nothing else can
		// drive payment -> confirmation, so treat it as a conflict.
		return result, s.stateLocked(sess), err
	}
	sess.confirmation = s.buildConfirmation(sess, result.Reference)
	s.emit(ctx, events.TopicPaymentSucceeded, sess.ID, map[string]any{
		"amount":    amount,
		"reference": result.Reference,
	})
	s.emit(ctx, events.TopicOrderConfirmed, sess.ID, map[string]any{
		"order_number": sess.confirmation.OrderNumber,
		"total":        sess.confirmation.Total,
	})
	return result, s.stateLocked(sess), nil
}

// StartNewOrder clears everything and returns to customization for the next
// order at the same kiosk.
func (s *Service) StartNewOrder(_ context.Context, sessionID string) (State, error) {
	return s.transition(sessionID, func(sess *Session) error {
		if err := sess.flow.StartNewOrder(); err != nil {
			return err
		}
		clearOrder(sess)
		return nil
	})
}

// GoHome clears everything and returns to the hero stage.
func (s *Service) GoHome(_ context.Context, sessionID string) (State, error) {
	return s.transition(sessionID, func(sess *Session) error {
		if err := sess.flow.GoHome(); err != nil {
			return err
		}
		clearOrder(sess)
		return nil
	})
}

// mutate applies a composition change. Mutations are legal while customizing;
// from the hero stage they implicitly start customization, mirroring a kiosk
// where the customizer is already on screen. Any later stage is a conflict.
func (s *Service) mutate(sessionID, action string, fn func(sess *Session)) (State, error) {
	sess, err := s.Store.Get(sessionID)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	switch step := sess.flow.Step(); step {
	case StepCustomize:
	case StepHero:
		if err := sess.flow.StartCustomizing(); err != nil {
			return State{}, err
		}
	default:
		return State{}, &TransitionError{From: step, Action: action}
	}
	fn(sess)
	return s.stateLocked(sess), nil
}

func (s *Service) transition(sessionID string, fn func(sess *Session) error) (State, error) {
	sess, err := s.Store.Get(sessionID)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := fn(sess); err != nil {
		return State{}, err
	}
	return s.stateLocked(sess), nil
}

func clearOrder(sess *Session) {
	sess.composer.Reset()
	sess.duo.Clear()
	sess.duoEnabled = false
	sess.snapshot = nil
	sess.confirmation = nil
}

func (s *Service) state(sess *Session) State {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.stateLocked(sess)
}

func (s *Service) stateLocked(sess *Session) State {
	selected := sess.duo.SelectedItems()
	views := make([]menuduoItemView, 0, len(selected))
	for _, it := range selected {
		views = append(views, menuduoItemView{
			ID:    it.ID,
			Name:  it.Name,
			Price: it.Price,
			Type:  string(it.Type),
		})
	}
	return State{
		ID:             sess.ID,
		Step:           sess.flow.Step(),
		Burgers:        sess.composer.Burgers(),
		MenuDuoEnabled: sess.duoEnabled,
		SelectedItems:  views,
		Snapshot:       sess.snapshot,
		Confirmation:   sess.confirmation,
		PaymentPending: sess.paymentPending,
	}
}

func (s *Service) quoteLocked(sess *Session) Quote {
	burgersTotal := sess.composer.Total()
	sidesTotal := sess.duo.Total()
	q := Quote{
		MenuDuoEnabled: sess.duoEnabled,
		Burgers:        sess.composer.Burgers(),
		BurgersTotal:   burgersTotal,
		SidesTotal:     sidesTotal,
	}
	if sess.composer.Len() > 0 {
		q.BasePrice = s.Prices.Base
		q.ToppingsPrice = burgersTotal - s.Prices.Base
	}
	if sess.duoEnabled {
		q.MenuDuoPrice = s.Prices.MenuDuo
	}
	q.DisplayTotal = q.BasePrice + q.ToppingsPrice + q.MenuDuoPrice + sidesTotal
	return q
}

// buildConfirmation freezes the pickup payload: one line per composed burger
// at its snapshot price, the menu-duo surcharge when enabled, then each
// selected side and drink.
func (s *Service) buildConfirmation(sess *Session, reference string) *Confirmation {
	var items []ConfirmationItem
	for _, b := range sess.composer.Burgers() {
		items = append(items, ConfirmationItem{
			Name:     s.BurgerName,
			Quantity: 1,
			Price:    b.Price,
		})
	}
	if sess.snapshot != nil && sess.snapshot.MenuDuo {
		items = append(items, ConfirmationItem{
			Name:     "Menu Duo",
			Quantity: 1,
			Price:    sess.snapshot.MenuDuoPrice,
		})
	}
	if sess.snapshot != nil {
		for _, side := range sess.snapshot.Sides {
			items = append(items, ConfirmationItem{
				Name:     side.Name,
				Quantity: 1,
				Price:    side.Price,
			})
		}
	}
	var total pricing.Money
	if sess.snapshot != nil {
		total = sess.snapshot.Total
	}
	return &Confirmation{
		OrderNumber:    s.orderNumber(),
		BurgerName:     s.BurgerName,
		Items:          items,
		Total:          total,
		PickupEstimate: s.PickupEstimate,
		Reference:      reference,
	}
}

func (s *Service) orderNumber() string {
	if s.OrderNumber != nil {
		return s.OrderNumber()
	}
	return newOrderNumber()
}

func newOrderNumber() string {
	return "NYC-" + strconv.Itoa(rand.IntN(10000))
}

func (s *Service) emit(ctx context.Context, topic, sessionID string, payload any) {
	if s.Events == nil {
		return
	}
	if _, err := s.Events.Emit(ctx, topic, sessionID, payload); err != nil {
		s.Log.Warn().Err(err).Str("topic", topic).Str("session_id", sessionID).Msg("event emit failed")
	}
}
