package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moonhaven/moonjournal-backend/config"
	"github.com/moonhaven/moonjournal-backend/internal/app/controller"
	"github.com/moonhaven/moonjournal-backend/internal/app/service"
	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/moonhaven/moonjournal-backend/internal/cache"
	"github.com/moonhaven/moonjournal-backend/internal/db"
	"github.com/moonhaven/moonjournal-backend/internal/middleware"
	"github.com/moonhaven/moonjournal-backend/internal/router"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
	"github.com/moonhaven/moonjournal-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Moon Journal Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"storage":     cfg.Storage.Driver,
		"log_level":   logLevel,
	})

	// Select the storage backend. The rest of the process only sees the
	// storage.Storage interface.
	var store storage.Storage
	switch cfg.Storage.Driver {
	case "postgres":
		if err := db.Initialize(&cfg.Database); err != nil {
			logger.Fatal("Failed to initialize database", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", err)
			}
		}()

		if err := db.Migrate(); err != nil {
			logger.Fatal("Failed to run migrations", err)
		}

		if err := db.Seed(); err != nil {
			logger.Warn("Failed to seed database", map[string]interface{}{
				"error": err.Error(),
			})
		}

		store = storage.NewGormStorage(db.GetDB())
	default:
		store = storage.NewMemoryStorage()
	}

	// Optional Redis catalog cache
	var productCache *cache.ProductCache
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Failed to connect to Redis, catalog cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
			productCache = cache.NewProductCache(redis.GetClient())
		}
	}

	// Initialize services
	authService := service.NewAuthService(store, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	productService := service.NewProductService(store, productCache)
	cartService := service.NewCartService(store)
	newsletterService := service.NewNewsletterService(store)
	contactService := service.NewContactService(store)

	// Initialize middleware
	cartSession := middleware.NewCartSession(&cfg.Session)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService, cartSession)
	newsletterController := controller.NewNewsletterController(newsletterService)
	contactController := controller.NewContactController(contactService)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		newsletterController,
		contactController,
		cartSession,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
