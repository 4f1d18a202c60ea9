package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/princinho/pepinterview/config"
	"github.com/princinho/pepinterview/database"
	"github.com/princinho/pepinterview/models"
)

// SeedAdminUser makes sure the configured admin account exists. An existing
// user with that email is promoted instead of overwritten.
func SeedAdminUser(ctx context.Context, users database.UserStore, admin config.AdminConfig) error {
	email := NormalizeEmail(admin.Email)
	if email == "" || admin.Password == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD")
	}

	hash, err := HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		FullName:          admin.Name,
		SearchName:        FoldName(admin.Name),
		Email:             email,
		PasswordHash:      hash,
		Skills:            []string{},
		Role:              models.RoleAdmin,
		NotificationPrefs: models.DefaultNotificationPrefs(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, promoted, err := users.EnsureAdmin(ctx, u)
	if err != nil {
		return fmt.Errorf("seed admin upsert failed: %w", err)
	}

	switch {
	case created:
		log.Println("Admin user seeded:", email)
	case promoted:
		log.Println("Existing user promoted to admin:", email)
	default:
		log.Println("Admin user already exists:", email)
	}
	return nil
}
