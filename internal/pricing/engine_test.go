package pricing

import "testing"

func TestBurgerDefaults(t *testing.T) {
	p := DefaultPrices()
	price := p.Burger(BurgerSpec{PattyCount: 1})
	if price != 899 {
		t.Fatalf("expected default burger at 899, got %d", price)
	}
}

func TestBurgerTriplePattyWithOnions(t *testing.T) {
	p := DefaultPrices()
	price := p.Burger(BurgerSpec{PattyCount: 3, Onions: true})
	// 899 + 2*450 + 50
	if price != 1849 {
		t.Fatalf("expected 1849, got %d", price)
	}
}

func TestBurgerClampsPattyFloor(t *testing.T) {
	p := DefaultPrices()
	if got := p.Burger(BurgerSpec{PattyCount: 0}); got != p.Base {
		t.Fatalf("patty count below 1 should price as base, got %d", got)
	}
}

func TestBunPlusPattyEqualsBase(t *testing.T) {
	p := DefaultPrices()
	if p.Bun()+p.Patty != p.Base {
		t.Fatalf("bun share %d plus patty %d must equal base %d", p.Bun(), p.Patty, p.Base)
	}
}

func TestComputeTax(t *testing.T) {
	// Reference order: $19.22 subtotal at 8.75% -> $1.68 tax, $20.90 total.
	s := Compute(1922, 875)
	if s.Tax != 168 {
		t.Fatalf("expected tax 168, got %d", s.Tax)
	}
	if s.Total != 2090 {
		t.Fatalf("expected total 2090, got %d", s.Total)
	}
}

func TestComputeNegativeSubtotal(t *testing.T) {
	s := Compute(-5, 875)
	if s.Subtotal != 0 || s.Tax != 0 || s.Total != 0 {
		t.Fatalf("negative subtotal should clamp to zero, got %+v", s)
	}
}
