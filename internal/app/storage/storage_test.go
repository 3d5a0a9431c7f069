package storage

import (
	"testing"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both backends must satisfy the same observable contract, so every
// test in this file runs against both.
func storageBackends(t *testing.T) map[string]Storage {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedCatalog(testDB))
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return map[string]Storage{
		"memory": NewMemoryStorage(),
		"gorm":   NewGormStorage(testDB),
	}
}

func TestStorage_GetAllProducts_SeededCatalog(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			products, err := store.GetAllProducts()
			require.NoError(t, err)
			require.Len(t, products, 4)

			assert.Equal(t, uint(1), products[0].ID)
			assert.Equal(t, "Somatic Moon Journal", products[0].Name)
			assert.Equal(t, model.TypeDigital, products[0].Type)
			assert.Equal(t, 27.00, products[0].Price)

			bundle := products[3]
			assert.Equal(t, model.TypeBundle, bundle.Type)
			assert.Equal(t, 225.00, bundle.Price)
			require.NotNil(t, bundle.OriginalPrice)
			assert.Equal(t, 269.00, *bundle.OriginalPrice)
		})
	}
}

func TestStorage_GetProductByID(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			product, err := store.GetProductByID(3)
			require.NoError(t, err)
			assert.Equal(t, "Moon Masterclass", product.Name)
			assert.Equal(t, model.TypeCourse, product.Type)

			_, err = store.GetProductByID(999)
			assert.ErrorIs(t, err, ErrProductNotFound)
		})
	}
}

func TestStorage_CreateProduct(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			product := &model.Product{
				Name:        "Moon Phase Poster",
				Price:       19.00,
				Type:        model.TypePrint,
				Description: "A printed lunar cycle poster.",
				ImageURL:    "https://example.com/poster.jpg",
			}
			require.NoError(t, store.CreateProduct(product))
			assert.Equal(t, uint(5), product.ID)

			found, err := store.GetProductByID(product.ID)
			require.NoError(t, err)
			assert.Equal(t, "Moon Phase Poster", found.Name)
		})
	}
}

func TestStorage_GetCart_UnknownCartIsEmpty(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			cart, err := store.GetCart(42)
			require.NoError(t, err)
			assert.Equal(t, int64(42), cart.ID)
			assert.Empty(t, cart.Items)
			assert.Equal(t, 0.0, cart.Total)
			assert.NotNil(t, cart.Items, "items must serialize as [] not null")
		})
	}
}

func TestStorage_AddToCart_MergesQuantities(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			first, err := store.AddToCart(42, 1, 2)
			require.NoError(t, err)
			assert.Equal(t, 2, first.Quantity)

			// Same product again: quantities accumulate on one line
			second, err := store.AddToCart(42, 1, 3)
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)
			assert.Equal(t, 5, second.Quantity)

			cart, err := store.GetCart(42)
			require.NoError(t, err)
			require.Len(t, cart.Items, 1)
			assert.Equal(t, 5, cart.Items[0].Quantity)
			assert.Equal(t, 27.00*5, cart.Total)
		})
	}
}

func TestStorage_AddToCart_SeparateLinesPerProduct(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.AddToCart(42, 1, 1)
			require.NoError(t, err)
			_, err = store.AddToCart(42, 3, 2)
			require.NoError(t, err)

			cart, err := store.GetCart(42)
			require.NoError(t, err)
			require.Len(t, cart.Items, 2)
			assert.Equal(t, uint(1), cart.Items[0].ProductID)
			assert.Equal(t, uint(3), cart.Items[1].ProductID)
			assert.Equal(t, 27.00+197.00*2, cart.Total)
		})
	}
}

func TestStorage_AddToCart_UnknownProduct(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.AddToCart(42, 999, 1)
			assert.ErrorIs(t, err, ErrProductNotFound)

			// The failed add must not create the cart either
			_, err = store.GetCart(42)
			require.NoError(t, err)
			err = store.RemoveFromCart(42, 1)
			assert.ErrorIs(t, err, ErrCartNotFound)
		})
	}
}

func TestStorage_CartsAreIsolated(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.AddToCart(42, 1, 1)
			require.NoError(t, err)
			_, err = store.AddToCart(77, 2, 4)
			require.NoError(t, err)

			cartA, err := store.GetCart(42)
			require.NoError(t, err)
			cartB, err := store.GetCart(77)
			require.NoError(t, err)

			require.Len(t, cartA.Items, 1)
			require.Len(t, cartB.Items, 1)
			assert.Equal(t, uint(1), cartA.Items[0].ProductID)
			assert.Equal(t, uint(2), cartB.Items[0].ProductID)
		})
	}
}

func TestStorage_RemoveFromCart(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			item, err := store.AddToCart(42, 1, 2)
			require.NoError(t, err)

			require.NoError(t, store.RemoveFromCart(42, item.ID))

			cart, err := store.GetCart(42)
			require.NoError(t, err)
			assert.Empty(t, cart.Items)
		})
	}
}

func TestStorage_RemoveFromCart_UnknownItemIsNoOp(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.AddToCart(42, 1, 2)
			require.NoError(t, err)

			// Item id the cart does not hold: silent no-op
			require.NoError(t, store.RemoveFromCart(42, 999))

			cart, err := store.GetCart(42)
			require.NoError(t, err)
			assert.Len(t, cart.Items, 1)
		})
	}
}

func TestStorage_RemoveFromCart_UnknownCart(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			err := store.RemoveFromCart(12345, 1)
			assert.ErrorIs(t, err, ErrCartNotFound)
		})
	}
}

func TestStorage_ClearCart(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.AddToCart(42, 1, 2)
			require.NoError(t, err)
			_, err = store.AddToCart(42, 2, 1)
			require.NoError(t, err)

			require.NoError(t, store.ClearCart(42))

			cart, err := store.GetCart(42)
			require.NoError(t, err)
			assert.Empty(t, cart.Items)
			assert.Equal(t, 0.0, cart.Total)

			// Idempotent: clearing again (and clearing never-seen carts) succeeds
			require.NoError(t, store.ClearCart(42))
			require.NoError(t, store.ClearCart(999))
		})
	}
}

func TestStorage_TotalRecomputedOnEveryRead(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.AddToCart(42, 1, 1)
			require.NoError(t, err)

			before, err := store.GetCart(42)
			require.NoError(t, err)
			assert.Equal(t, 27.00, before.Total)

			_, err = store.AddToCart(42, 4, 1)
			require.NoError(t, err)

			after, err := store.GetCart(42)
			require.NoError(t, err)
			assert.Equal(t, 27.00+225.00, after.Total)
		})
	}
}

// A cart item whose product has since left the catalog degrades to a
// placeholder line instead of failing the read. Only the relational
// backend can produce a dangling reference (via product soft-delete).
func TestGormStorage_GetCart_DanglingProductPlaceholder(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedCatalog(testDB))
	defer db.CleanupTestDB(testDB)

	store := NewGormStorage(testDB)

	item, err := store.AddToCart(42, 2, 3)
	require.NoError(t, err)

	require.NoError(t, testDB.Delete(&model.Product{}, 2).Error)

	cart, err := store.GetCart(42)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	line := cart.Items[0]
	assert.Equal(t, item.ID, line.ID)
	assert.Equal(t, uint(2), line.ProductID)
	assert.Equal(t, "Unknown Product", line.ProductName)
	assert.Equal(t, 0.0, line.Price)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, model.TypeUnknown, line.Type)
	assert.Equal(t, 0.0, cart.Total)
}

func TestStorage_NewsletterSubscriptions(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.GetNewsletterSubscriptionByEmail("luna@example.com")
			assert.ErrorIs(t, err, ErrSubscriptionNotFound)

			sub := &model.NewsletterSubscription{Email: "luna@example.com"}
			require.NoError(t, store.CreateNewsletterSubscription(sub))
			assert.NotZero(t, sub.ID)
			assert.False(t, sub.SubscribedAt.IsZero())

			found, err := store.GetNewsletterSubscriptionByEmail("luna@example.com")
			require.NoError(t, err)
			assert.Equal(t, sub.ID, found.ID)
		})
	}
}

// The unique constraint is the race backup behind the service's
// pre-check; only the relational backend carries it.
func TestGormStorage_CreateNewsletterSubscription_Duplicate(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	store := NewGormStorage(testDB)

	require.NoError(t, store.CreateNewsletterSubscription(&model.NewsletterSubscription{Email: "luna@example.com"}))

	err = store.CreateNewsletterSubscription(&model.NewsletterSubscription{Email: "luna@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestStorage_ContactMessages(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			msg := &model.ContactMessage{
				Name:    "Luna Moore",
				Email:   "luna@example.com",
				Subject: "Shipping question",
				Message: "When does the print journal ship to Canada?",
			}
			require.NoError(t, store.CreateContactMessage(msg))
			assert.NotZero(t, msg.ID)
			assert.False(t, msg.CreatedAt.IsZero())

			messages, err := store.GetAllContactMessages()
			require.NoError(t, err)
			require.Len(t, messages, 1)
			assert.Equal(t, "Shipping question", messages[0].Subject)
		})
	}
}

func TestStorage_Users(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			user := &model.User{
				Username:     "admin",
				PasswordHash: "hash",
				Role:         model.RoleAdmin,
			}
			require.NoError(t, store.CreateUser(user))
			assert.NotZero(t, user.ID)

			found, err := store.GetUserByUsername("admin")
			require.NoError(t, err)
			assert.Equal(t, model.RoleAdmin, found.Role)

			byID, err := store.GetUser(user.ID)
			require.NoError(t, err)
			assert.Equal(t, "admin", byID.Username)

			_, err = store.GetUserByUsername("nobody")
			assert.ErrorIs(t, err, ErrUserNotFound)

			err = store.CreateUser(&model.User{Username: "admin", PasswordHash: "other"})
			assert.ErrorIs(t, err, ErrDuplicateUsername)
		})
	}
}
