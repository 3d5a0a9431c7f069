package service

import (
	"testing"

	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest(t *testing.T) CartService {
	t.Helper()
	return NewCartService(storage.NewMemoryStorage())
}

func TestCartService_GetCart_EmptyForNewCart(t *testing.T) {
	svc := setupCartServiceTest(t)

	cart, err := svc.GetCart(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cart.ID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestCartService_AddToCart(t *testing.T) {
	svc := setupCartServiceTest(t)

	item, err := svc.AddToCart(42, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(1), item.ProductID)
	assert.Equal(t, 2, item.Quantity)

	cart, err := svc.GetCart(42)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Somatic Moon Journal", cart.Items[0].ProductName)
	assert.Equal(t, 54.00, cart.Total)
}

func TestCartService_AddToCart_MergesSameProduct(t *testing.T) {
	svc := setupCartServiceTest(t)

	_, err := svc.AddToCart(42, 1, 1)
	require.NoError(t, err)
	merged, err := svc.AddToCart(42, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, merged.Quantity)

	cart, err := svc.GetCart(42)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	svc := setupCartServiceTest(t)

	_, err := svc.AddToCart(42, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	svc := setupCartServiceTest(t)

	item, err := svc.AddToCart(42, 1, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromCart(42, item.ID))

	// Second removal of the same item is a no-op, not an error
	require.NoError(t, svc.RemoveFromCart(42, item.ID))
}

func TestCartService_RemoveFromCart_UnknownCart(t *testing.T) {
	svc := setupCartServiceTest(t)

	err := svc.RemoveFromCart(12345, 1)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	svc := setupCartServiceTest(t)

	_, err := svc.AddToCart(42, 1, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(42, 2, 1)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(42))

	cart, err := svc.GetCart(42)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	require.NoError(t, svc.ClearCart(42))
}
