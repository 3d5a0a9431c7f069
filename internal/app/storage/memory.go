package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
)

// MemoryStorage keeps all entities in process memory: growable maps
// keyed by per-entity auto-incrementing counters, with a sub-map of
// items per cart. State is lost on restart, which makes it a dev/test
// backend; multi-instance deployments need GormStorage.
type MemoryStorage struct {
	mu sync.RWMutex

	users         map[uint]*model.User
	products      map[uint]*model.Product
	carts         map[int64]map[uint]*model.CartItem
	subscriptions map[uint]*model.NewsletterSubscription
	messages      map[uint]*model.ContactMessage

	nextUserID         uint
	nextProductID      uint
	nextCartItemID     uint
	nextSubscriptionID uint
	nextMessageID      uint
}

func NewMemoryStorage() *MemoryStorage {
	s := &MemoryStorage{
		users:              make(map[uint]*model.User),
		products:           make(map[uint]*model.Product),
		carts:              make(map[int64]map[uint]*model.CartItem),
		subscriptions:      make(map[uint]*model.NewsletterSubscription),
		messages:           make(map[uint]*model.ContactMessage),
		nextUserID:         1,
		nextProductID:      1,
		nextCartItemID:     1,
		nextSubscriptionID: 1,
		nextMessageID:      1,
	}
	s.seedProducts()
	return s
}

func (s *MemoryStorage) seedProducts() {
	for _, p := range model.DefaultCatalog() {
		product := p
		product.ID = s.nextProductID
		s.nextProductID++
		s.products[product.ID] = &product
	}

	logger.Info("In-memory catalog seeded", map[string]interface{}{
		"products": len(s.products),
	})
}

// User methods

func (s *MemoryStorage) GetUser(id uint) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStorage) GetUserByUsername(username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStorage) CreateUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return ErrDuplicateUsername
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	copied := *user
	s.users[user.ID] = &copied

	logger.Debug("User created in memory store", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// Product methods

func (s *MemoryStorage) GetAllProducts() ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (s *MemoryStorage) GetProductByID(id uint) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *MemoryStorage) CreateProduct(product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextProductID
	s.nextProductID++
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	copied := *product
	s.products[product.ID] = &copied

	logger.Debug("Product created in memory store", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

// Cart methods

func (s *MemoryStorage) GetCart(cartID int64) (*model.CartView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.carts[cartID]
	if !ok || len(items) == 0 {
		return model.EmptyCartView(cartID), nil
	}

	view := model.EmptyCartView(cartID)
	for _, item := range items {
		line := model.CartViewItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: "Unknown Product",
			Price:       0,
			Quantity:    item.Quantity,
			Type:        model.TypeUnknown,
		}
		// Dangling product references degrade to the placeholder
		// instead of failing the whole read.
		if product, ok := s.products[item.ProductID]; ok {
			line.ProductName = product.Name
			line.Price = product.Price
			line.Type = product.Type
		}
		view.Items = append(view.Items, line)
		view.Total += line.Price * float64(line.Quantity)
	}

	sort.Slice(view.Items, func(i, j int) bool {
		return view.Items[i].ID < view.Items[j].ID
	})
	return view, nil
}

func (s *MemoryStorage) AddToCart(cartID int64, productID uint, quantity int) (*model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		logger.Warn("Cannot add to cart: product not in catalog", map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, ErrProductNotFound
	}

	items, ok := s.carts[cartID]
	if !ok {
		items = make(map[uint]*model.CartItem)
		s.carts[cartID] = items
	}

	// Upsert keyed by (cartID, productID): quantities accumulate, a
	// second line is never created for the same product.
	for _, item := range items {
		if item.ProductID == productID {
			item.Quantity += quantity
			logger.Debug("Cart item quantity merged", map[string]interface{}{
				"cart_id":      cartID,
				"cart_item_id": item.ID,
				"quantity":     item.Quantity,
			})
			copied := *item
			return &copied, nil
		}
	}

	item := &model.CartItem{
		ID:        s.nextCartItemID,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	s.nextCartItemID++
	items[item.ID] = item

	logger.Debug("Cart item created in memory store", map[string]interface{}{
		"cart_id":      cartID,
		"cart_item_id": item.ID,
		"product_id":   productID,
		"quantity":     quantity,
	})
	copied := *item
	return &copied, nil
}

func (s *MemoryStorage) RemoveFromCart(cartID int64, itemID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}

	// Removing an item the cart does not hold is a no-op.
	delete(items, itemID)

	logger.Debug("Cart item removed from memory store", map[string]interface{}{
		"cart_id":      cartID,
		"cart_item_id": itemID,
	})
	return nil
}

func (s *MemoryStorage) ClearCart(cartID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, cartID)

	logger.Debug("Cart cleared in memory store", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

// Newsletter methods

func (s *MemoryStorage) GetNewsletterSubscriptionByEmail(email string) (*model.NewsletterSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subscriptions {
		if sub.Email == email {
			copied := *sub
			return &copied, nil
		}
	}
	return nil, ErrSubscriptionNotFound
}

func (s *MemoryStorage) CreateNewsletterSubscription(subscription *model.NewsletterSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscription.ID = s.nextSubscriptionID
	s.nextSubscriptionID++
	subscription.SubscribedAt = time.Now()

	copied := *subscription
	s.subscriptions[subscription.ID] = &copied

	logger.Debug("Newsletter subscription created in memory store", map[string]interface{}{
		"subscription_id": subscription.ID,
	})
	return nil
}

// Contact form methods

func (s *MemoryStorage) CreateContactMessage(message *model.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message.ID = s.nextMessageID
	s.nextMessageID++
	message.CreatedAt = time.Now()

	copied := *message
	s.messages[message.ID] = &copied

	logger.Debug("Contact message created in memory store", map[string]interface{}{
		"message_id": message.ID,
	})
	return nil
}

func (s *MemoryStorage) GetAllContactMessages() ([]model.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]model.ContactMessage, 0, len(s.messages))
	for _, m := range s.messages {
		messages = append(messages, *m)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].ID < messages[j].ID
	})
	return messages, nil
}
