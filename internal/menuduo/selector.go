package menuduo

import (
	"github.com/nyc-burger-co/kiosk-api/internal/catalog"
	"github.com/nyc-burger-co/kiosk-api/internal/pricing"
)

// Selector tracks side and drink picks for the menu-duo bundle. The two
// sets are independent: toggling a side never touches the drink selection.
// Selection survives the bundle being hidden; only Clear empties it.
type Selector struct {
	catalog catalog.Provider
	sides   map[string]struct{}
	drinks  map[string]struct{}
}

// NewSelector returns an empty selector bound to a catalog.
func NewSelector(p catalog.Provider) *Selector {
	return &Selector{
		catalog: p,
		sides:   make(map[string]struct{}),
		drinks:  make(map[string]struct{}),
	}
}

// ToggleSide flips membership for a catalog side. Ids not present in the
// catalog are silently ignored.
func (s *Selector) ToggleSide(id string) {
	if !catalog.Contains(s.catalog.Sides(), id) {
		return
	}
	toggle(s.sides, id)
}

// ToggleDrink flips membership for a catalog drink.
func (s *Selector) ToggleDrink(id string) {
	if !catalog.Contains(s.catalog.Drinks(), id) {
		return
	}
	toggle(s.drinks, id)
}

// Clear empties both selection sets.
func (s *Selector) Clear() {
	s.sides = make(map[string]struct{})
	s.drinks = make(map[string]struct{})
}

// SelectedItems returns selected sides then selected drinks, each in
// catalog order rather than click order, so order summaries reproduce
// deterministically.
func (s *Selector) SelectedItems() []catalog.SideItem {
	var out []catalog.SideItem
	for _, it := range s.catalog.Sides() {
		if _, ok := s.sides[it.ID]; ok {
			out = append(out, it)
		}
	}
	for _, it := range s.catalog.Drinks() {
		if _, ok := s.drinks[it.ID]; ok {
			out = append(out, it)
		}
	}
	return out
}

// Total sums the prices of all selected items.
func (s *Selector) Total() pricing.Money {
	var total pricing.Money
	for _, it := range s.SelectedItems() {
		total += it.Price
	}
	return total
}

func toggle(set map[string]struct{}, id string) {
	if _, ok := set[id]; ok {
		delete(set, id)
		return
	}
	set[id] = struct{}{}
}
