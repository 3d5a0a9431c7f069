package db

import (
	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.NewsletterSubscription{},
		&model.ContactMessage{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the default catalog to the database
func Seed() error {
	return SeedCatalog(DB)
}

// SeedCatalog inserts the four storefront products if the catalog is
// empty. Safe to run on every startup.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Catalog already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding product catalog...")

	totalInserted := 0
	for _, product := range model.DefaultCatalog() {
		p := product
		if err := db.Create(&p).Error; err != nil {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"name": p.Name,
				"type": p.Type,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Catalog seeded successfully", map[string]interface{}{
		"total_products": totalInserted,
	})
	return nil
}
