package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophstore/internal/models"
	"github.com/dmitrijs2005/gophstore/internal/repositories/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_EmptyStore(t *testing.T) {
	s := newShop(t)

	got, err := NewSummaryService(s.db).Summary(context.Background())
	require.NoError(t, err)
	for _, key := range collection.Keys {
		assert.Zero(t, got[key], key)
	}
	assert.Len(t, got, len(collection.Keys))
}

func TestSummary_CountsRecords(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	registerUser(t, s, "a@x", models.RoleUser)
	registerUser(t, s, "b@x", models.RoleAdmin)
	p := addWidget(t, s)
	addWidget(t, s)
	_, err := s.cart.AddToCart(ctx, p)
	require.NoError(t, err)
	_, err = s.cart.AddToCart(ctx, p)
	require.NoError(t, err)

	got, err := NewSummaryService(s.db).Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		collection.KeyUsers:       2,
		collection.KeyCurrentUser: 1,
		collection.KeyProducts:    2,
		collection.KeyCart:        1,
		collection.KeyOrders:      0,
	}, got)

	require.NoError(t, s.identity.Logout(ctx))
	got, err = NewSummaryService(s.db).Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, got[collection.KeyCurrentUser])
}
