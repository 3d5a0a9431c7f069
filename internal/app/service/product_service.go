package service

import (
	"context"
	"errors"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/moonhaven/moonjournal-backend/internal/cache"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

type ProductService interface {
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
}

type productService struct {
	store storage.Storage
	cache *cache.ProductCache // nil when Redis is disabled
}

func NewProductService(store storage.Storage, productCache *cache.ProductCache) ProductService {
	return &productService{
		store: store,
		cache: productCache,
	}
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetAll(context.Background())
		if err == nil {
			logger.Debug("Catalog served from cache", map[string]interface{}{
				"count": len(products),
			})
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Cache failures degrade to the store, never to the caller.
			logger.Warn("Catalog cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	products, err := s.store.GetAllProducts()
	if err != nil {
		logger.Error("Failed to fetch products", err, nil)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAll(context.Background(), products); err != nil {
			logger.Warn("Catalog cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.store.GetProductByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"name": product.Name,
		"type": product.Type,
	})

	if err := s.store.CreateProduct(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(context.Background()); err != nil {
			logger.Warn("Catalog cache invalidation failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return nil
}
