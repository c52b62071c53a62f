package cart_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/organic-orders/internal/domain"
	"github.com/jhoicas/organic-orders/internal/domain/cart"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var catalog = []entity.Product{
	{ID: "a", Name: "Tomato", Unit: "kg", Price: dec("40")},
	{ID: "b", Name: "Banana (Robusta)", Unit: "dozen", Price: dec("55")},
	{ID: "c", Name: "Country Eggs", Unit: "6 pcs", Price: dec("70")},
}

func TestSetQuantity_NegativoEsInvalido(t *testing.T) {
	c := cart.New()
	err := c.SetQuantity("a", dec("-1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, c.Len())
}

func TestSetQuantity_CeroElimina(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.SetQuantity("a", dec("2")))
	require.NoError(t, c.SetQuantity("a", decimal.Zero))

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Quantity("a").IsZero())
	assert.Empty(t, c.NonZeroLines(catalog))
}

func TestNonZeroLines_OrdenDelCatalogo(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.SetQuantity("c", dec("1")))
	require.NoError(t, c.SetQuantity("a", dec("2")))

	lines := c.NonZeroLines(catalog)
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Product.ID)
	assert.Equal(t, 0, lines[0].Position)
	assert.True(t, dec("80").Equal(lines[0].Amount))
	assert.Equal(t, "c", lines[1].Product.ID)
	assert.Equal(t, 2, lines[1].Position)
}

func TestLineAmount(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.SetQuantity("b", dec("0.5")))

	amt, err := c.LineAmount("b", catalog)
	require.NoError(t, err)
	assert.True(t, dec("27.5").Equal(amt))

	_, err = c.LineAmount("zzz", catalog)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPrune_QuitaProductosInexistentes(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.SetQuantity("a", dec("1")))
	require.NoError(t, c.SetQuantity("gone", dec("3")))

	removed := c.Prune(catalog)

	assert.Equal(t, []string{"gone"}, removed)
	assert.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.SetQuantity("a", dec("1")))
	c.Clear()
	assert.Equal(t, 0, c.Len())
}
