package main

import (
	"context"
	"errors"
	"log"
	"os"

	"cashper/internal/config"
	"cashper/internal/models"
	"cashper/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminName := config.GetEnv("ADMIN_NAME", "Administrator")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repositories.CloseDB()

	users := repositories.NewUserRepository(repositories.DB)
	ctx := context.Background()

	if _, err := users.GetByEmail(ctx, adminEmail); err == nil {
		log.Println("Admin user already exists")
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	adminUser := &models.User{
		Name:     adminName,
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		IsAdmin:  true,
		Status:   "Active",
	}
	if err := users.Create(ctx, adminUser); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("✅ Admin user %s created", adminEmail)
}
