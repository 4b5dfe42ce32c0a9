package burger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nyc-burger-co/kiosk-api/internal/pricing"
)

func newTestComposer() *Composer {
	return NewComposer(pricing.DefaultPrices())
}

func TestAddDefaults(t *testing.T) {
	c := newTestComposer()
	b := c.Add()
	require.Equal(t, "burger-1", b.ID)
	require.Equal(t, 1, b.PattyCount)
	require.False(t, b.Onions)
	require.False(t, b.Jalapenos)
	require.Equal(t, int64(899), b.Price)
}

func TestPattyAdjustAndToppings(t *testing.T) {
	c := newTestComposer()
	b := c.Add()
	c.AdjustPatties(b.ID, 1)
	c.AdjustPatties(b.ID, 1)
	got := c.Burgers()[0]
	require.Equal(t, 3, got.PattyCount)
	require.Equal(t, int64(1799), got.Price) // 899 + 2*450

	c.SetOnions(b.ID, true)
	require.Equal(t, int64(1849), c.Burgers()[0].Price)
}

func TestPattyClampIsNoOp(t *testing.T) {
	c := newTestComposer()
	b := c.Add()
	c.AdjustPatties(b.ID, -1)
	require.Equal(t, 1, c.Burgers()[0].PattyCount)

	c.AdjustPatties(b.ID, 5)
	require.Equal(t, 3, c.Burgers()[0].PattyCount)
	c.AdjustPatties(b.ID, 1)
	require.Equal(t, 3, c.Burgers()[0].PattyCount)
}

func TestUnknownIDIsNoOp(t *testing.T) {
	c := newTestComposer()
	c.Add()
	before := c.Burgers()
	c.AdjustPatties("burger-99", 1)
	c.SetOnions("burger-99", true)
	c.Remove("burger-99")
	require.Equal(t, before, c.Burgers())
}

func TestToppingToggleIdempotence(t *testing.T) {
	c := newTestComposer()
	b := c.Add()
	original := c.Burgers()[0]
	c.SetJalapenos(b.ID, true)
	c.SetJalapenos(b.ID, false)
	require.Equal(t, original, c.Burgers()[0])
}

func TestIDsNeverReused(t *testing.T) {
	c := newTestComposer()
	first := c.Add()
	c.Remove(first.ID)
	second := c.Add()
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, "burger-2", second.ID)
}

func TestResetRestoresCounter(t *testing.T) {
	c := newTestComposer()
	c.Add()
	c.Add()
	c.Reset()
	require.Zero(t, c.Len())
	require.Equal(t, "burger-1", c.Add().ID)
}

func TestLineItemsSumToBurgerPrice(t *testing.T) {
	c := newTestComposer()
	b := c.Add()
	c.AdjustPatties(b.ID, 2)
	c.SetOnions(b.ID, true)
	c.SetJalapenos(b.ID, true)

	var sum int64
	for _, it := range c.LineItems() {
		sum += it.Price
	}
	require.Equal(t, c.Burgers()[0].Price, sum)
}

func TestLineItemPositionsAreSequential(t *testing.T) {
	c := newTestComposer()
	c.Add()
	b := c.Add()
	c.SetOnions(b.ID, true)
	for i, it := range c.LineItems() {
		require.Equal(t, i, it.Position)
	}
}

func TestListenerSeesAggregateTotal(t *testing.T) {
	c := newTestComposer()
	var last int64 = -1
	c.SetListener(func(total int64) { last = total })

	c.Add()
	require.Equal(t, int64(899), last)

	b := c.Add()
	require.Equal(t, int64(1798), last)

	c.SetJalapenos(b.ID, true)
	require.Equal(t, int64(1873), last)

	c.Reset()
	require.Zero(t, last)
}
