package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ridereg/internal/config"
	"ridereg/internal/db"
	"ridereg/internal/model"
	"ridereg/internal/repository"
)

// Seeds the initial superadmin account. Role changes for everyone else go
// through the superadmin role endpoint.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.AppUser{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	name := os.Getenv("SUPERADMIN_NAME")
	if email == "" || password == "" {
		log.Fatal("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD are required")
	}
	if name == "" {
		name = "Superadmin"
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if existing, err := userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		log.Printf("Superadmin %s already exists, nothing to do", email)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check existing superadmin: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.AppUser{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  name,
		Role:         model.RoleSuperadmin,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create superadmin: %v", err)
	}

	log.Printf("Seeded superadmin %s (%s)", email, user.ID)
}
