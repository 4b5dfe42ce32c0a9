package order

import (
	"time"

	"github.com/nyc-burger-co/kiosk-api/internal/burger"
	"github.com/nyc-burger-co/kiosk-api/internal/catalog"
	"github.com/nyc-burger-co/kiosk-api/internal/pricing"
)

// Details is the immutable snapshot taken when a session enters checkout.
// Later edits to the live composition never reach an existing snapshot; the
// customer has to go back to customization to regenerate one.
type Details struct {
	BurgerName   string             `json:"burgerName"`
	Ingredients  []burger.LineItem  `json:"ingredients"`
	Sides        []catalog.SideItem `json:"sides"`
	MenuDuo      bool               `json:"menuDuo"`
	MenuDuoPrice pricing.Money      `json:"menuDuoPrice"`
	Subtotal     pricing.Money      `json:"subtotal"`
	Tax          pricing.Money      `json:"tax"`
	Total        pricing.Money      `json:"total"`
	AssembledAt  time.Time          `json:"assembledAt"`
}

// Assembler builds checkout snapshots from live composition state.
type Assembler struct {
	BurgerName string
	TaxBps     int
	Now        func() time.Time
}

// Assemble computes the snapshot totals: subtotal is the sum of every
// flattened ingredient line, every selected side, and the menu-duo
// surcharge when the bundle is enabled. Tax and total follow from the
// configured rate. The inputs are copied so the snapshot cannot alias live
// state.
func (a Assembler) Assemble(items []burger.LineItem, duoEnabled bool, duoPrice pricing.Money, sides []catalog.SideItem) Details {
	var subtotal pricing.Money
	for _, it := range items {
		subtotal += it.Price
	}
	for _, s := range sides {
		subtotal += s.Price
	}
	applied := pricing.Money(0)
	if duoEnabled {
		applied = duoPrice
		subtotal += duoPrice
	}
	summary := pricing.Compute(subtotal, a.TaxBps)
	return Details{
		BurgerName:   a.BurgerName,
		Ingredients:  append([]burger.LineItem(nil), items...),
		Sides:        append([]catalog.SideItem(nil), sides...),
		MenuDuo:      duoEnabled,
		MenuDuoPrice: applied,
		Subtotal:     summary.Subtotal,
		Tax:          summary.Tax,
		Total:        summary.Total,
		AssembledAt:  a.now(),
	}
}

func (a Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
