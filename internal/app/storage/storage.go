package storage

import (
	"errors"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
)

// Sentinel errors shared by both backends. Handlers map them to HTTP
// statuses; anything else is a backend failure.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrCartNotFound         = errors.New("cart not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrSubscriptionNotFound = errors.New("newsletter subscription not found")
	ErrDuplicateEmail       = errors.New("email already subscribed")
	ErrDuplicateUsername    = errors.New("username already taken")
)

// Storage is the single capability interface over all storefront state.
// Two interchangeable implementations exist: MemoryStorage (process
// memory, lost on restart) and GormStorage (relational). Swapping them
// must not change any observable response shape or error condition.
type Storage interface {
	// User operations
	GetUser(id uint) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	CreateUser(user *model.User) error

	// Product operations
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error

	// Cart operations.
	// GetCart never fails for an unknown cart: it returns the canonical
	// empty-cart shape with the total recomputed from the catalog on
	// every read.
	GetCart(cartID int64) (*model.CartView, error)
	// AddToCart is an upsert keyed by (cartID, productID): an existing
	// line gains quantity, otherwise a new line is created. The owning
	// cart record is created implicitly.
	AddToCart(cartID int64, productID uint, quantity int) (*model.CartItem, error)
	// RemoveFromCart fails with ErrCartNotFound for an unknown cart;
	// removing an item the cart does not hold is a silent no-op.
	RemoveFromCart(cartID int64, itemID uint) error
	// ClearCart is idempotent; clearing an unknown or empty cart is fine.
	ClearCart(cartID int64) error

	// Newsletter operations. Uniqueness is pre-checked by the caller via
	// the lookup; only a persistent unique constraint backs it up.
	GetNewsletterSubscriptionByEmail(email string) (*model.NewsletterSubscription, error)
	CreateNewsletterSubscription(subscription *model.NewsletterSubscription) error

	// Contact form operations
	CreateContactMessage(message *model.ContactMessage) error
	GetAllContactMessages() ([]model.ContactMessage, error)
}
