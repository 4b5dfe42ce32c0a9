package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nyc-burger-co/kiosk-api/internal/common"
	"github.com/nyc-burger-co/kiosk-api/internal/payment"
	"github.com/nyc-burger-co/kiosk-api/internal/resilience"
)

// Handler wires the checkout service to HTTP.
type Handler struct {
	Svc *Service
}

// Create opens a new kiosk session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.CreateSession(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": state})
}

// Get returns the full session state.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": state})
}

// AddBurger appends a default burger to the composition.
func (h *Handler) AddBurger(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.AddBurger(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

// RemoveBurger deletes one burger from the composition.
func (h *Handler) RemoveBurger(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.RemoveBurger(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "burgerId"))
	h.respond(w, state, err)
}

// UpdateBurger applies a partial burger update: a patty delta and/or topping
// flags. Absent fields are left untouched.
func (h *Handler) UpdateBurger(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	burgerID := chi.URLParam(r, "burgerId")
	var payload struct {
		PattyDelta *int  `json:"pattyDelta"`
		Onions     *bool `json:"onions"`
		Jalapenos  *bool `json:"jalapenos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if payload.PattyDelta == nil && payload.Onions == nil && payload.Jalapenos == nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "at least one of pattyDelta, onions, jalapenos is required", nil)
		return
	}
	ctx := r.Context()
	var (
		state State
		err   error
	)
	if payload.PattyDelta != nil {
		state, err = h.Svc.AdjustPatties(ctx, sessionID, burgerID, *payload.PattyDelta)
	}
	if err == nil && payload.Onions != nil {
		state, err = h.Svc.SetOnions(ctx, sessionID, burgerID, *payload.Onions)
	}
	if err == nil && payload.Jalapenos != nil {
		state, err = h.Svc.SetJalapenos(ctx, sessionID, burgerID, *payload.Jalapenos)
	}
	h.respond(w, state, err)
}

// ResetBurgers clears the whole composition.
func (h *Handler) ResetBurgers(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.ResetBurgers(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

// SetMenuDuo flips the bundle surcharge on or off.
func (h *Handler) SetMenuDuo(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Enabled == nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "enabled is required", nil)
		return
	}
	state, err := h.Svc.SetMenuDuo(r.Context(), chi.URLParam(r, "id"), *payload.Enabled)
	h.respond(w, state, err)
}

// ToggleSide flips one side in the menu-duo selection.
func (h *Handler) ToggleSide(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.ToggleSide(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"))
	h.respond(w, state, err)
}

// ToggleDrink flips one drink in the menu-duo selection.
func (h *Handler) ToggleDrink(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.ToggleDrink(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"))
	h.respond(w, state, err)
}

// Quote returns the live price summary.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.Svc.Quote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// BeginCheckout assembles the order snapshot and moves to review.
func (h *Handler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.BeginCheckout(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

// ContinueToPayment moves review -> payment.
func (h *Handler) ContinueToPayment(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.ContinueToPayment(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

// BackToReview moves payment -> review.
func (h *Handler) BackToReview(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.BackToReview(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

// EditOrder moves review -> customize and discards the snapshot.
func (h *Handler) EditOrder(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.EditOrder(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

// SubmitPayment charges the active order snapshot.
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Card payment.Card `json:"card"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	result, state, err := h.Svc.SubmitPayment(r.Context(), chi.URLParam(r, "id"), payload.Card)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !result.Success {
		common.JSONError(w, http.StatusPaymentRequired, "PAYMENT_DECLINED", result.FailureReason, map[string]any{
			"state": state,
		})
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": state})
}

// StartNewOrder clears the order and returns to customization.
func (h *Handler) StartNewOrder(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.StartNewOrder(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

// GoHome clears the order and returns to the hero stage.
func (h *Handler) GoHome(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.GoHome(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

func (h *Handler) respond(w http.ResponseWriter, state State, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": state})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	var transition *TransitionError
	switch {
	case errors.As(err, &appErr):
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		common.JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
	case errors.Is(err, ErrSessionNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
	case errors.As(err, &transition):
		common.JSONError(w, http.StatusConflict, "INVALID_STEP", transition.Error(), map[string]any{
			"step": transition.From,
		})
	case errors.Is(err, ErrPaymentPending):
		common.JSONError(w, http.StatusConflict, "PAYMENT_PENDING", err.Error(), nil)
	case errors.Is(err, resilience.ErrOpenCircuit):
		common.JSONError(w, http.StatusServiceUnavailable, "PAYMENT_UNAVAILABLE", "payment provider is temporarily unavailable", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		common.JSONError(w, http.StatusGatewayTimeout, "PAYMENT_TIMEOUT", "payment provider did not respond", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
