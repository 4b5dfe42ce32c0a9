package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()
	require.Len(t, c.Sides(), 3)
	require.Len(t, c.Drinks(), 3)
	for _, it := range c.Sides() {
		require.Equal(t, TypeSide, it.Type)
		require.Greater(t, it.Price, int64(0))
	}
	for _, it := range c.Drinks() {
		require.Equal(t, TypeDrink, it.Type)
		require.Greater(t, it.Price, int64(0))
	}
}

func TestDefaultCatalogOrderIsStable(t *testing.T) {
	c := Default()
	sides := c.Sides()
	require.Equal(t, "fries", sides[0].ID)
	require.Equal(t, "onion-rings", sides[1].ID)
	require.Equal(t, "salad", sides[2].ID)
	drinks := c.Drinks()
	require.Equal(t, "soda", drinks[0].ID)
}

func TestStaticCopiesInput(t *testing.T) {
	src := []SideItem{{ID: "fries", Name: "French Fries", Price: 399, Type: TypeSide}}
	c := NewStatic(src, nil)
	src[0].ID = "mutated"
	require.Equal(t, "fries", c.Sides()[0].ID)
}

func TestContains(t *testing.T) {
	c := Default()
	require.True(t, Contains(c.Sides(), "fries"))
	require.False(t, Contains(c.Sides(), "soda"))
}
