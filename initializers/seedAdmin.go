package initializers

import (
	"errors"
	"log"
	"os"

	"github.com/Kariqs/nebula-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin creates the ADMIN_EMAIL account on first start. An existing
// account is left untouched.
func EnsureAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	if err := ensureAdmin(DB, email, password); err != nil {
		log.Println("Failed to ensure admin account:", err)
	}
}

func ensureAdmin(db *gorm.DB, email, password string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{Name: "Admin User", Email: email, Password: string(hashed), Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Admin account created:", email)
	return nil
}
