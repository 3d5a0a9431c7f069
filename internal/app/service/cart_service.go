package service

import (
	"errors"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
)

var (
	ErrCartNotFound = errors.New("cart not found")
)

type CartService interface {
	GetCart(cartID int64) (*model.CartView, error)
	AddToCart(cartID int64, productID uint, quantity int) (*model.CartItem, error)
	RemoveFromCart(cartID int64, itemID uint) error
	ClearCart(cartID int64) error
}

type cartService struct {
	store storage.Storage
}

func NewCartService(store storage.Storage) CartService {
	return &cartService{store: store}
}

func (s *cartService) GetCart(cartID int64) (*model.CartView, error) {
	logger.Debug("Fetching cart", map[string]interface{}{
		"cart_id": cartID,
	})

	view, err := s.store.GetCart(cartID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	logger.Info("Cart fetched successfully", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(view.Items),
		"total":   view.Total,
	})
	return view, nil
}

func (s *cartService) AddToCart(cartID int64, productID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	item, err := s.store.AddToCart(cartID, productID, quantity)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"cart_id":    cartID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to add item to cart", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_id":      cartID,
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return item, nil
}

func (s *cartService) RemoveFromCart(cartID int64, itemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"cart_id":      cartID,
		"cart_item_id": itemID,
	})

	if err := s.store.RemoveFromCart(cartID, itemID); err != nil {
		if errors.Is(err, storage.ErrCartNotFound) {
			logger.Warn("Cart not found for removal", map[string]interface{}{
				"cart_id": cartID,
			})
			return ErrCartNotFound
		}
		logger.Error("Failed to remove cart item", err, map[string]interface{}{
			"cart_id":      cartID,
			"cart_item_id": itemID,
		})
		return err
	}
	return nil
}

func (s *cartService) ClearCart(cartID int64) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"cart_id": cartID,
	})

	if err := s.store.ClearCart(cartID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}
