package main

import (
	"os"

	"github.com/moonhaven/moonjournal-backend/config"
	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/db"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
	"github.com/moonhaven/moonjournal-backend/pkg/util"
)

// Seeds the postgres backend: product catalog plus an optional admin
// user from ADMIN_USERNAME / ADMIN_PASSWORD. The memory backend seeds
// itself on startup and does not need this tool.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	if cfg.Storage.Driver != "postgres" {
		logger.Fatal("Seeding requires STORAGE_DRIVER=postgres", nil)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.SeedCatalog(db.GetDB()); err != nil {
		logger.Fatal("Failed to seed catalog", err)
	}

	if err := seedAdminUser(); err != nil {
		logger.Fatal("Failed to seed admin user", err)
	}

	logger.Info("Seeding completed successfully")
}

func seedAdminUser() error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logger.Info("ADMIN_USERNAME / ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	var count int64
	if err := db.GetDB().Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Admin user already exists, skipping...", map[string]interface{}{
			"username": username,
		})
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := db.GetDB().Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user created", map[string]interface{}{
		"username": username,
	})
	return nil
}
