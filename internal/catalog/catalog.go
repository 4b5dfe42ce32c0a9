package catalog

import "github.com/nyc-burger-co/kiosk-api/internal/pricing"

// ItemType distinguishes the two halves of the menu-duo bundle.
type ItemType string

const (
	// TypeSide marks a food side such as fries.
	TypeSide ItemType = "side"
	// TypeDrink marks a beverage.
	TypeDrink ItemType = "drink"
)

// SideItem is one fixed menu-duo catalog entry.
type SideItem struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Price pricing.Money `json:"price"`
	Image string        `json:"image"`
	Type  ItemType      `json:"type"`
}

// Provider supplies the menu-duo catalog. The selector and order assembler
// only see this interface so they can be exercised with any data set.
type Provider interface {
	Sides() []SideItem
	Drinks() []SideItem
}

// Static serves a fixed in-memory catalog in a stable order.
type Static struct {
	sides  []SideItem
	drinks []SideItem
}

// NewStatic copies the provided slices so later mutation by the caller
// cannot reorder the catalog.
func NewStatic(sides, drinks []SideItem) *Static {
	return &Static{
		sides:  append([]SideItem(nil), sides...),
		drinks: append([]SideItem(nil), drinks...),
	}
}

// Sides returns the catalog sides in listing order.
func (s *Static) Sides() []SideItem {
	return append([]SideItem(nil), s.sides...)
}

// Drinks returns the catalog drinks in listing order.
func (s *Static) Drinks() []SideItem {
	return append([]SideItem(nil), s.drinks...)
}

// Default returns the reference kiosk catalog: three sides, three drinks.
func Default() *Static {
	return NewStatic(
		[]SideItem{
			{ID: "fries", Name: "French Fries", Price: 399, Image: "https://images.unsplash.com/photo-1630384060421-cb20d0e0649d?w=300&q=80", Type: TypeSide},
			{ID: "onion-rings", Name: "Onion Rings", Price: 449, Image: "https://images.unsplash.com/photo-1639024471283-03518883512d?w=300&q=80", Type: TypeSide},
			{ID: "salad", Name: "Side Salad", Price: 349, Image: "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=300&q=80", Type: TypeSide},
		},
		[]SideItem{
			{ID: "soda", Name: "Fountain Soda", Price: 249, Image: "https://images.unsplash.com/photo-1622483767028-3f66f32aef97?w=300&q=80", Type: TypeDrink},
			{ID: "shake", Name: "Milkshake", Price: 499, Image: "https://images.unsplash.com/photo-1579954115545-a95591f28bfc?w=300&q=80", Type: TypeDrink},
			{ID: "water", Name: "Bottled Water", Price: 199, Image: "https://images.unsplash.com/photo-1616118132534-381148898bb4?w=300&q=80", Type: TypeDrink},
		},
	)
}

// Contains reports whether an id exists among the provided items.
func Contains(items []SideItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
