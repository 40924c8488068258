package db

import (
	"fmt"

	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin ensures an admin account exists so a fresh deployment is usable.
// Existing accounts are left untouched; in particular the password is never
// reset for an account that is already there.
func SeedAdmin(database *gorm.DB, email string, password string) error {
	if email == "" || password == "" {
		return nil
	}

	repo := NewUserRepository(database)
	exists, err := repo.ExistsByNormalizedEmail(email)
	if err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if exists {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleAdmin,
		Department:   "Management",
		Position:     "Administrator",
		IsActive:     true,
	}
	if err := repo.Create(&admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	logrus.WithField("email", email).Info("seeded admin account")
	return nil
}
