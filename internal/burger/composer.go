package burger

import (
	"fmt"

	"github.com/nyc-burger-co/kiosk-api/internal/pricing"
)

// Burger is one customizable burger in a session's composition. Price is
// derived from the other three fields and recomputed on every mutation; it
// is never set independently.
type Burger struct {
	ID         string        `json:"id"`
	PattyCount int           `json:"pattyCount"`
	Onions     bool          `json:"onions"`
	Jalapenos  bool          `json:"jalapenos"`
	Price      pricing.Money `json:"price"`
}

// LineItem is a single priced constituent a burger decomposes into for
// display and summation. Position reflects stacking order only.
type LineItem struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Price    pricing.Money `json:"price"`
	Category string        `json:"category"`
	Position int           `json:"position"`
}

// Listener observes the aggregate price of all flattened line items after
// every mutation. The checkout quote and the order assembler hang off this.
type Listener func(total pricing.Money)

const (
	minPatties = 1
	maxPatties = 3
)

// Composer owns the burger collection for a single session. Burger ids come
// from a per-instance counter that is never reused after removal, so a
// removed burger's id cannot collide with a later one.
type Composer struct {
	prices   pricing.PriceList
	burgers  []Burger
	nextID   int
	listener Listener
}

// NewComposer returns an empty composer with its id counter at the initial
// value.
func NewComposer(prices pricing.PriceList) *Composer {
	return &Composer{prices: prices, nextID: 1}
}

// SetListener registers the recompute callback. Passing nil detaches it.
func (c *Composer) SetListener(fn Listener) {
	c.listener = fn
}

// Add appends a burger with defaults: one patty, no toppings.
func (c *Composer) Add() Burger {
	b := Burger{
		ID:         fmt.Sprintf("burger-%d", c.nextID),
		PattyCount: 1,
		Price:      c.prices.Base,
	}
	c.nextID++
	c.burgers = append(c.burgers, b)
	c.notify()
	return b
}

// Remove deletes the burger with the given id. Unknown ids are a silent
// no-op; the kiosk UI never treats them as failures.
func (c *Composer) Remove(id string) {
	for i := range c.burgers {
		if c.burgers[i].ID == id {
			c.burgers = append(c.burgers[:i], c.burgers[i+1:]...)
			c.notify()
			return
		}
	}
}

// AdjustPatties shifts the patty count by delta, clamped to [1,3]. When the
// clamped result equals the current count the call does nothing at all.
func (c *Composer) AdjustPatties(id string, delta int) {
	b := c.find(id)
	if b == nil {
		return
	}
	count := b.PattyCount + delta
	if count < minPatties {
		count = minPatties
	}
	if count > maxPatties {
		count = maxPatties
	}
	if count == b.PattyCount {
		return
	}
	b.PattyCount = count
	c.reprice(b)
}

// SetOnions sets the onions topping flag.
func (c *Composer) SetOnions(id string, enabled bool) {
	b := c.find(id)
	if b == nil || b.Onions == enabled {
		return
	}
	b.Onions = enabled
	c.reprice(b)
}

// SetJalapenos sets the jalapeños topping flag.
func (c *Composer) SetJalapenos(id string, enabled bool) {
	b := c.find(id)
	if b == nil || b.Jalapenos == enabled {
		return
	}
	b.Jalapenos = enabled
	c.reprice(b)
}

// Reset clears all burgers and restores the id counter to its initial
// value, matching a brand-new composer.
func (c *Composer) Reset() {
	c.burgers = nil
	c.nextID = 1
	c.notify()
}

// Burgers returns a copy of the current composition.
func (c *Composer) Burgers() []Burger {
	return append([]Burger(nil), c.burgers...)
}

// Len reports the number of burgers.
func (c *Composer) Len() int {
	return len(c.burgers)
}

// Total sums the derived prices of all burgers.
func (c *Composer) Total() pricing.Money {
	var total pricing.Money
	for _, b := range c.burgers {
		total += b.Price
	}
	return total
}

// LineItems flattens every burger into priced line items: one bun line at
// the base price with the first patty netted out, one line per patty, and a
// line per enabled topping. The lines of a burger always sum to its price.
func (c *Composer) LineItems() []LineItem {
	var items []LineItem
	pos := 0
	for _, b := range c.burgers {
		items = append(items, LineItem{
			ID:       fmt.Sprintf("bun-%s", b.ID),
			Name:     "Sesame Bun",
			Price:    c.prices.Bun(),
			Category: "base",
			Position: pos,
		})
		pos++
		for i := 0; i < b.PattyCount; i++ {
			items = append(items, LineItem{
				ID:       fmt.Sprintf("patty-%s-%d", b.ID, i),
				Name:     "Beef Patty",
				Price:    c.prices.Patty,
				Category: "protein",
				Position: pos,
			})
			pos++
		}
		if b.Onions {
			items = append(items, LineItem{
				ID:       fmt.Sprintf("onions-%s", b.ID),
				Name:     "Onions",
				Price:    c.prices.Onions,
				Category: "topping",
				Position: pos,
			})
			pos++
		}
		if b.Jalapenos {
			items = append(items, LineItem{
				ID:       fmt.Sprintf("jalapenos-%s", b.ID),
				Name:     "Jalapeños",
				Price:    c.prices.Jalapenos,
				Category: "topping",
				Position: pos,
			})
			pos++
		}
	}
	return items
}

func (c *Composer) find(id string) *Burger {
	for i := range c.burgers {
		if c.burgers[i].ID == id {
			return &c.burgers[i]
		}
	}
	return nil
}

// reprice recomputes the derived price immediately so no read can ever
// observe a burger whose price disagrees with its inputs.
func (c *Composer) reprice(b *Burger) {
	b.Price = c.prices.Burger(pricing.BurgerSpec{
		PattyCount: b.PattyCount,
		Onions:     b.Onions,
		Jalapenos:  b.Jalapenos,
	})
	c.notify()
}

func (c *Composer) notify() {
	if c.listener != nil {
		c.listener(c.Total())
	}
}
