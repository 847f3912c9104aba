package cache

import (
	"context"
	"testing"

	"neroli_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert_SumsQuantities(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	item := models.CartItem{ProductID: "oud-imperial", Name: "Oud Impérial", Price: 8900}

	// ajouts répétés du même produit : la quantité est la somme
	_, err := store.Upsert(ctx, "u1", item)
	require.NoError(t, err)

	item.Quantity = 3
	_, err = store.Upsert(ctx, "u1", item)
	require.NoError(t, err)

	item.Quantity = 0 // quantité absente → 1
	cart, err := store.Upsert(ctx, "u1", item)
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestUpsert_DistinctProducts(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, "u1", models.CartItem{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	cart, err := store.Upsert(ctx, "u1", models.CartItem{ProductID: "p2", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, cart, 2)
}

func TestSetQuantity(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, "u1", models.CartItem{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	cart, err := store.SetQuantity(ctx, "u1", "p1", 7)
	require.NoError(t, err)
	require.Equal(t, 7, cart[0].Quantity)

	// id inconnu → no-op
	cart, err = store.SetQuantity(ctx, "u1", "inconnu", 99)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.Equal(t, 7, cart[0].Quantity)
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, "u1", models.CartItem{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	cart, err := store.Remove(ctx, "u1", "inconnu")
	require.NoError(t, err)
	require.Len(t, cart, 1)

	cart, err = store.Remove(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Empty(t, cart)
}

func TestClear(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, "u1", models.CartItem{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, "u1", models.CartItem{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "u1"))

	cart, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, cart)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, "u1", models.CartItem{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	cart, err := store.List(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, cart)
}
