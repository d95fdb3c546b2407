package main

import (
	"context"
	"log"
	"os"

	"gorm.io/gorm"

	"unidash/internal/auth"
	"unidash/internal/config"
	"unidash/internal/db"
	"unidash/internal/model"
	"unidash/internal/repository"
)

// seedUser describes one provisioned account. Credentials come from the
// environment so no secrets land in the binary.
type seedUser struct {
	usernameEnv string
	passwordEnv string
	role        string
	firstName   string
}

var seedUsers = []seedUser{
	{usernameEnv: "ADMIN_USERNAME", passwordEnv: "ADMIN_PASSWORD", role: "admin", firstName: "Admin"},
	{usernameEnv: "MANAGER_USERNAME", passwordEnv: "MANAGER_PASSWORD", role: "manager", firstName: "Manager"},
	{usernameEnv: "VIEWER_USERNAME", passwordEnv: "VIEWER_PASSWORD", role: "viewer", firstName: "Viewer"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	ctx := context.Background()

	for _, tc := range cfg.Tenants {
		gormDB, err := db.NewMySQL(tc.Tag, tc.DSN)
		if err != nil {
			log.Fatalf("Failed to connect to %s database: %v", tc.Tag, err)
		}
		if err := gormDB.AutoMigrate(&model.User{}); err != nil {
			log.Fatalf("Failed to run migrations for %s: %v", tc.Tag, err)
		}

		users := repository.NewUserRepository(gormDB)
		created, skipped := 0, 0
		for _, su := range seedUsers {
			username := os.Getenv(su.usernameEnv)
			password := os.Getenv(su.passwordEnv)
			if username == "" || password == "" {
				skipped++
				continue
			}

			existing, err := users.FindByUsername(ctx, username)
			if err != nil && err != gorm.ErrRecordNotFound {
				log.Fatalf("Error checking user %s in %s: %v", username, tc.Tag, err)
			}
			if existing != nil {
				skipped++
				continue
			}

			hash, algo, err := auth.HashPassword(password)
			if err != nil {
				log.Fatalf("Failed to hash password for %s: %v", username, err)
			}

			user := &model.User{
				Username:     username,
				PasswordHash: hash,
				PasswordAlgo: algo,
				FirstName:    su.firstName,
				Role:         su.role,
			}
			if err := users.Create(ctx, user); err != nil {
				log.Fatalf("Failed to create user %s in %s: %v", username, tc.Tag, err)
			}
			created++
		}

		log.Printf("Tenant %s: %d users created, %d skipped", tc.Tag, created, skipped)
	}

	log.Println("Seed completed successfully!")
}
