package checkout_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/nyc-burger-co/kiosk-api/internal/checkout"
	"github.com/nyc-burger-co/kiosk-api/internal/payment"
)

func newRouter(gw payment.Provider) http.Handler {
	h := &checkout.Handler{Svc: newService(gw)}
	r := chi.NewRouter()
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/burgers", h.AddBurger)
			r.Patch("/burgers/{burgerId}", h.UpdateBurger)
			r.Delete("/burgers/{burgerId}", h.RemoveBurger)
			r.Post("/reset", h.ResetBurgers)
			r.Put("/menu-duo", h.SetMenuDuo)
			r.Post("/menu-duo/sides/{itemId}", h.ToggleSide)
			r.Post("/menu-duo/drinks/{itemId}", h.ToggleDrink)
			r.Get("/quote", h.Quote)
			r.Post("/checkout", h.BeginCheckout)
			r.Post("/checkout/continue", h.ContinueToPayment)
			r.Post("/checkout/back", h.BackToReview)
			r.Post("/checkout/edit", h.EditOrder)
			r.Post("/payment", h.SubmitPayment)
			r.Post("/new-order", h.StartNewOrder)
			r.Post("/home", h.GoHome)
		})
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) checkout.State {
	t.Helper()
	var envelope struct {
		Data checkout.State `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestSessionJourneyHTTP(t *testing.T) {
	gw := &stubGateway{result: payment.Result{Success: true, Reference: "pay_http"}}
	router := newRouter(gw)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	state := decodeState(t, rec)
	require.NotEmpty(t, state.ID)
	base := "/api/v1/sessions/" + state.ID

	rec = doJSON(t, router, http.MethodPost, base+"/burgers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	require.Len(t, state.Burgers, 1)
	burgerID := state.Burgers[0].ID

	rec = doJSON(t, router, http.MethodPatch, base+"/burgers/"+burgerID, `{"pattyDelta":1,"onions":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	require.Equal(t, 2, state.Burgers[0].PattyCount)
	require.True(t, state.Burgers[0].Onions)
	require.EqualValues(t, 1399, state.Burgers[0].Price)

	rec = doJSON(t, router, http.MethodPut, base+"/menu-duo", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, base+"/menu-duo/sides/fries", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, base+"/quote", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var quoteEnvelope struct {
		Data checkout.Quote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quoteEnvelope))
	require.EqualValues(t, 1399, quoteEnvelope.Data.BurgersTotal)
	require.EqualValues(t, 499, quoteEnvelope.Data.MenuDuoPrice)

	rec = doJSON(t, router, http.MethodPost, base+"/checkout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	require.Equal(t, checkout.StepReview, state.Step)
	require.NotNil(t, state.Snapshot)

	rec = doJSON(t, router, http.MethodPost, base+"/checkout/continue", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/payment", `{"card":{"number":"4242424242424242","name":"Walt Frazier","expiry":"12/30","cvc":"123"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	require.Equal(t, checkout.StepConfirmation, state.Step)
	require.NotNil(t, state.Confirmation)
	require.Equal(t, "NYC-42", state.Confirmation.OrderNumber)

	rec = doJSON(t, router, http.MethodPost, base+"/new-order", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	require.Equal(t, checkout.StepCustomize, state.Step)
	require.Empty(t, state.Burgers)
}

func TestPaymentDeclinedHTTP(t *testing.T) {
	gw := &stubGateway{result: payment.Result{FailureReason: "card declined"}}
	router := newRouter(gw)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "")
	state := decodeState(t, rec)
	base := "/api/v1/sessions/" + state.ID

	doJSON(t, router, http.MethodPost, base+"/burgers", "")
	doJSON(t, router, http.MethodPost, base+"/checkout", "")
	doJSON(t, router, http.MethodPost, base+"/checkout/continue", "")

	rec = doJSON(t, router, http.MethodPost, base+"/payment", `{"card":{"number":"4242424242424242","name":"Walt Frazier","expiry":"12/30","cvc":"123"}}`)
	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "PAYMENT_DECLINED", envelope.Error.Code)
	require.Equal(t, "card declined", envelope.Error.Message)

	rec = doJSON(t, router, http.MethodGet, base, "")
	state = decodeState(t, rec)
	require.Equal(t, checkout.StepPayment, state.Step)
}

func TestUnknownSessionHTTP(t *testing.T) {
	router := newRouter(&stubGateway{})
	rec := doJSON(t, router, http.MethodGet, "/api/v1/sessions/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidStepHTTP(t *testing.T) {
	router := newRouter(&stubGateway{})
	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "")
	state := decodeState(t, rec)
	base := "/api/v1/sessions/" + state.ID

	// Payment before checkout has even begun.
	rec = doJSON(t, router, http.MethodPost, base+"/checkout/continue", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "INVALID_STEP", envelope.Error.Code)
}

func TestBurgerPatchValidation(t *testing.T) {
	router := newRouter(&stubGateway{})
	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "")
	state := decodeState(t, rec)
	base := "/api/v1/sessions/" + state.ID

	doJSON(t, router, http.MethodPost, base+"/burgers", "")

	rec = doJSON(t, router, http.MethodPatch, base+"/burgers/burger-1", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, base+"/menu-duo", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
