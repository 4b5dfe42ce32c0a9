package checkout

import (
	"sync"
	"time"

	"github.com/nyc-burger-co/kiosk-api/internal/burger"
	"github.com/nyc-burger-co/kiosk-api/internal/menuduo"
	"github.com/nyc-burger-co/kiosk-api/internal/order"
	"github.com/nyc-burger-co/kiosk-api/internal/pricing"
)

// Session is the complete state for one customer: the burger composition,
// the menu-duo selection, the flow position, the active order snapshot and
// the pending-payment latch. All mutations run under the session mutex so
// operations apply atomically and sequentially, and a price recomputation
// is always observable before any downstream read.
type Session struct {
	ID string

	mu             sync.Mutex
	flow           Flow
	composer       *burger.Composer
	duo            *menuduo.Selector
	duoEnabled     bool
	snapshot       *order.Details
	confirmation   *Confirmation
	paymentPending bool
	createdAt      time.Time
	expiresAt      time.Time
}

// ConfirmationItem is one display line on the confirmation screen.
type ConfirmationItem struct {
	Name     string        `json:"name"`
	Quantity int           `json:"quantity"`
	Price    pricing.Money `json:"price"`
}

// Confirmation is what the confirmation stage presents once payment has
// succeeded.
type Confirmation struct {
	OrderNumber    string             `json:"orderNumber"`
	BurgerName     string             `json:"burgerName"`
	Items          []ConfirmationItem `json:"items"`
	Total          pricing.Money      `json:"total"`
	PickupEstimate string             `json:"pickupEstimate"`
	Reference      string             `json:"reference"`
}

// Quote is the live price summary while composing. DisplayTotal follows
// the summary-card model (one base burger plus the aggregate toppings price
// plus the optional duo surcharge); BurgersTotal is the reconciled
// per-burger sum the snapshot is built from.
type Quote struct {
	BasePrice      pricing.Money   `json:"basePrice"`
	ToppingsPrice  pricing.Money   `json:"toppingsPrice"`
	MenuDuoEnabled bool            `json:"menuDuoEnabled"`
	MenuDuoPrice   pricing.Money   `json:"menuDuoPrice"`
	DisplayTotal   pricing.Money   `json:"displayTotal"`
	Burgers        []burger.Burger `json:"burgers"`
	BurgersTotal   pricing.Money   `json:"burgersTotal"`
	SidesTotal     pricing.Money   `json:"sidesTotal"`
}

// State is a full read-model of a session for the GET endpoint.
type State struct {
	ID             string            `json:"id"`
	Step           Step              `json:"step"`
	Burgers        []burger.Burger   `json:"burgers"`
	MenuDuoEnabled bool              `json:"menuDuoEnabled"`
	SelectedItems  []menuduoItemView `json:"selectedItems"`
	Snapshot       *order.Details    `json:"snapshot,omitempty"`
	Confirmation   *Confirmation     `json:"confirmation,omitempty"`
	PaymentPending bool              `json:"paymentPending"`
}

type menuduoItemView struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Price pricing.Money `json:"price"`
	Type  string        `json:"type"`
}
