package pricing

// Money represents a monetary value stored in minor units (cents).
type Money = int64

// PriceList fixes the menu prices the kiosk composes burgers from. The base
// price covers the bun plus the first patty; additional patties and toppings
// are priced on top.
type PriceList struct {
	Base      Money
	Patty     Money
	Onions    Money
	Jalapenos Money
	MenuDuo   Money
}

// DefaultPrices mirrors the printed menu.
func DefaultPrices() PriceList {
	return PriceList{
		Base:      899,
		Patty:     450,
		Onions:    50,
		Jalapenos: 75,
		MenuDuo:   499,
	}
}

// BurgerSpec is the pricing-relevant shape of a composed burger.
type BurgerSpec struct {
	PattyCount int
	Onions     bool
	Jalapenos  bool
}

// Burger prices a single burger. The first patty is included in the base
// price, so only additional patties are charged separately.
func (p PriceList) Burger(b BurgerSpec) Money {
	patties := b.PattyCount
	if patties < 1 {
		patties = 1
	}
	price := p.Base + Money(patties-1)*p.Patty
	if b.Onions {
		price += p.Onions
	}
	if b.Jalapenos {
		price += p.Jalapenos
	}
	return price
}

// Bun returns the bun's share of the base price with the first patty netted
// out. Flattened line items price the bun at this value and every patty at
// the patty price so that the lines of a burger sum back to Burger().
func (p PriceList) Bun() Money {
	return p.Base - p.Patty
}

// Summary aggregates computed order totals.
type Summary struct {
	Subtotal Money
	Tax      Money
	Total    Money
}

// Compute applies the tax rate, expressed in basis points, to a subtotal.
// Amounts are integer cents so the only rounding happens in the tax
// division; intermediate sums never lose precision.
func Compute(subtotal Money, taxBps int) Summary {
	if subtotal < 0 {
		subtotal = 0
	}
	tax := (subtotal * Money(taxBps)) / 10000
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
