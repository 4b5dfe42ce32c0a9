package menuduo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nyc-burger-co/kiosk-api/internal/catalog"
)

func newTestSelector() *Selector {
	return NewSelector(catalog.Default())
}

func TestSelectionReturnsCatalogOrder(t *testing.T) {
	s := newTestSelector()
	// Click order: drink first, side second.
	s.ToggleDrink("soda")
	s.ToggleSide("fries")

	items := s.SelectedItems()
	require.Len(t, items, 2)
	require.Equal(t, "fries", items[0].ID)
	require.Equal(t, "soda", items[1].ID)
}

func TestToggleFlipsMembership(t *testing.T) {
	s := newTestSelector()
	s.ToggleSide("fries")
	s.ToggleSide("fries")
	require.Empty(t, s.SelectedItems())
}

func TestSidesAndDrinksAreIndependent(t *testing.T) {
	s := newTestSelector()
	s.ToggleSide("fries")
	s.ToggleDrink("shake")
	s.ToggleSide("fries")
	items := s.SelectedItems()
	require.Len(t, items, 1)
	require.Equal(t, "shake", items[0].ID)
}

func TestUnknownIDIgnored(t *testing.T) {
	s := newTestSelector()
	s.ToggleSide("soda") // a drink id on the side toggle
	s.ToggleDrink("nonsense")
	require.Empty(t, s.SelectedItems())
}

func TestTotal(t *testing.T) {
	s := newTestSelector()
	s.ToggleSide("fries")  // 399
	s.ToggleDrink("water") // 199
	require.Equal(t, int64(598), s.Total())
}

func TestClear(t *testing.T) {
	s := newTestSelector()
	s.ToggleSide("salad")
	s.ToggleDrink("soda")
	s.Clear()
	require.Empty(t, s.SelectedItems())
	require.Zero(t, s.Total())
}
