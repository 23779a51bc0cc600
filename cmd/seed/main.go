// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"inventory/internal/core/apperror"
	"inventory/internal/domain/auth"
	"inventory/internal/domain/category"
	"inventory/internal/infrastructure/storage/postgres"
	"inventory/internal/infrastructure/storage/postgres/auth_repo"
	"inventory/internal/infrastructure/storage/postgres/catalog_repo"
	"inventory/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
		Service:     "inventory-seed",
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	poolCfg.AppName = "inventory-seed"
	poolCfg.MaxConns = 2
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")
	txm := postgres.NewTxManager(pool)

	if err := seedAdminUser(ctx, auth_repo.NewUserRepo(txm), log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}
	if err := seedDefaultCategory(ctx, category.NewService(catalog_repo.NewCategoryRepo(txm)), log); err != nil {
		log.Fatalw("failed to seed default category", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, users auth.UserRepository, log *logger.Logger) error {
	email := auth.NormalizeEmail(getEnv("ADMIN_EMAIL", "admin@inventory.local"))
	password := getEnv("ADMIN_PASSWORD", "Admin123!")

	exists, err := users.Exists(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		log.Infow("admin user already exists", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := auth.NewUser(email, string(hash), "System", "Admin", auth.RoleAdmin)
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", email, "user_id", admin.ID)
	return nil
}

func seedDefaultCategory(ctx context.Context, categories *category.Service, log *logger.Logger) error {
	c, err := categories.Create(ctx, "General", "Default product category")
	if err != nil {
		if apperror.IsConflict(err) {
			log.Info("default category already exists")
			return nil
		}
		return err
	}
	log.Infow("default category created", "category_id", c.ID)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
