package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophstore/internal/models"
	"github.com/dmitrijs2005/gophstore/internal/repositories/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addWidget(t *testing.T, s *shop) models.Product {
	t.Helper()
	p, err := s.catalog.AddProduct(context.Background(), widgetInput("admin"))
	require.NoError(t, err)
	return p
}

func TestAddToCart_SameProductTwiceIsOneLine(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	p := addWidget(t, s)

	first, err := s.cart.AddToCart(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)

	second, err := s.cart.AddToCart(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Quantity)

	lines, err := s.cart.Lines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, p.ID, lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestUpdateQuantity_NonPositiveRemovesLine(t *testing.T) {
	for _, n := range []int{0, -5} {
		s := newShop(t)
		ctx := context.Background()
		p := addWidget(t, s)
		_, err := s.cart.AddToCart(ctx, p)
		require.NoError(t, err)

		require.NoError(t, s.cart.UpdateQuantity(ctx, p.ID, n))

		lines, err := s.cart.Lines(ctx)
		require.NoError(t, err)
		assert.Empty(t, lines, "quantity %d", n)
	}
}

func TestUpdateQuantity_SetsExactValue(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	p := addWidget(t, s)
	_, err := s.cart.AddToCart(ctx, p)
	require.NoError(t, err)

	require.NoError(t, s.cart.UpdateQuantity(ctx, p.ID, 7))
	require.NoError(t, s.cart.UpdateQuantity(ctx, "missing", 3))

	lines, err := s.cart.Lines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	p := addWidget(t, s)
	_, err := s.cart.AddToCart(ctx, p)
	require.NoError(t, err)

	require.NoError(t, s.cart.RemoveItem(ctx, "missing"))
	lines, err := s.cart.Lines(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, s.cart.RemoveItem(ctx, p.ID))
	lines, err = s.cart.Lines(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, "[]", string(rawValue(t, s.db, collection.KeyCart)))
}

func TestCartTotals(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	total, err := s.cart.TotalPrice(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	widget := addWidget(t, s)
	gin := widgetInput("admin")
	gin.Name, gin.Price = "Gadget", price("0.10")
	gadget, err := s.catalog.AddProduct(ctx, gin)
	require.NoError(t, err)

	for _, p := range []models.Product{widget, widget, gadget, gadget, gadget} {
		_, err := s.cart.AddToCart(ctx, p)
		require.NoError(t, err)
	}

	total, err = s.cart.TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "20.28", total.StringFixed(2))

	items, err := s.cart.TotalItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, items)
}

func TestCart_SurvivesReopen(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	p := addWidget(t, s)
	_, err := s.cart.AddToCart(ctx, p)
	require.NoError(t, err)

	again := NewCartService(s.db, s.cart.log)
	lines, err := again.Lines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, p.Name, lines[0].Name)
}
