package storage

import (
	"errors"
	"strings"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
	"gorm.io/gorm"
)

// GormStorage implements the Storage facade on a relational database.
// Cart assembly does an explicit batch lookup of products by the item
// set's product ids, then joins in memory.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}

// User methods

func (s *GormStorage) GetUser(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to find user in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (s *GormStorage) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to find user by username in database", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}
	return &user, nil
}

func (s *GormStorage) CreateUser(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	})

	if err := s.db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateUsername
		}
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
		})
		return err
	}
	return nil
}

// Product methods

func (s *GormStorage) GetAllProducts() ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Order("id").Find(&products).Error; err != nil {
		logger.Error("Failed to list products from database", err, nil)
		return nil, err
	}
	return products, nil
}

func (s *GormStorage) GetProductByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to find product in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (s *GormStorage) CreateProduct(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name": product.Name,
		"type": product.Type,
	})

	if err := s.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

// Cart methods

func (s *GormStorage) GetCart(cartID int64) (*model.CartView, error) {
	var items []model.CartItem
	err := s.db.Where("cart_id = ?", cartID).Order("id").Find(&items).Error
	if err != nil {
		logger.Error("Failed to load cart items from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	if len(items) == 0 {
		return model.EmptyCartView(cartID), nil
	}

	// Batch-load the referenced products, then join in memory.
	productIDs := make([]uint, 0, len(items))
	seen := make(map[uint]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}

	var products []model.Product
	if err := s.db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		logger.Error("Failed to batch-load products for cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}
	productsByID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
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
		if product, ok := productsByID[item.ProductID]; ok {
			line.ProductName = product.Name
			line.Price = product.Price
			line.Type = product.Type
		}
		view.Items = append(view.Items, line)
		view.Total += line.Price * float64(line.Quantity)
	}
	return view, nil
}

func (s *GormStorage) AddToCart(cartID int64, productID uint, quantity int) (*model.CartItem, error) {
	logger.Debug("Adding item to cart in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	var product model.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to check product for cart add", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	// Create the owning cart record implicitly on first add.
	cart := model.Cart{ID: cartID}
	if err := s.db.FirstOrCreate(&cart, model.Cart{ID: cartID}).Error; err != nil {
		logger.Error("Failed to ensure cart record", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	var item model.CartItem
	err := s.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			logger.Error("Failed to merge cart item quantity", err, map[string]interface{}{
				"cart_item_id": item.ID,
			})
			return nil, err
		}
		logger.Debug("Cart item quantity merged", map[string]interface{}{
			"cart_id":      cartID,
			"cart_item_id": item.ID,
			"quantity":     item.Quantity,
		})
		return &item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = model.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			logger.Error("Failed to create cart item in database", err, map[string]interface{}{
				"cart_id":    cartID,
				"product_id": productID,
			})
			return nil, err
		}
		return &item, nil
	default:
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, err
	}
}

func (s *GormStorage) RemoveFromCart(cartID int64, itemID uint) error {
	var cart model.Cart
	if err := s.db.First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		logger.Error("Failed to check cart for removal", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	// Scoped to the cart; deleting a missing item is a no-op.
	err := s.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}, itemID).Error
	if err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_id":      cartID,
			"cart_item_id": itemID,
		})
		return err
	}

	logger.Debug("Cart item removed from database", map[string]interface{}{
		"cart_id":      cartID,
		"cart_item_id": itemID,
	})
	return nil
}

func (s *GormStorage) ClearCart(cartID int64) error {
	if err := s.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart items from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	if err := s.db.Delete(&model.Cart{}, "id = ?", cartID).Error; err != nil {
		logger.Error("Failed to delete cart record from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Debug("Cart cleared in database", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

// Newsletter methods

func (s *GormStorage) GetNewsletterSubscriptionByEmail(email string) (*model.NewsletterSubscription, error) {
	var subscription model.NewsletterSubscription
	err := s.db.Where("email = ?", email).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		logger.Error("Failed to find newsletter subscription in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return &subscription, nil
}

func (s *GormStorage) CreateNewsletterSubscription(subscription *model.NewsletterSubscription) error {
	logger.Debug("Creating newsletter subscription in database", map[string]interface{}{
		"email": subscription.Email,
	})

	if err := s.db.Create(subscription).Error; err != nil {
		// The unique constraint backs up the caller's pre-check, so a
		// race loser still gets the duplicate condition.
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		logger.Error("Failed to create newsletter subscription in database", err, map[string]interface{}{
			"email": subscription.Email,
		})
		return err
	}
	return nil
}

// Contact form methods

func (s *GormStorage) CreateContactMessage(message *model.ContactMessage) error {
	logger.Debug("Creating contact message in database", map[string]interface{}{
		"email":   message.Email,
		"subject": message.Subject,
	})

	if err := s.db.Create(message).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": message.Email,
		})
		return err
	}
	return nil
}

func (s *GormStorage) GetAllContactMessages() ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	if err := s.db.Order("id").Find(&messages).Error; err != nil {
		logger.Error("Failed to list contact messages from database", err, nil)
		return nil, err
	}
	return messages, nil
}
