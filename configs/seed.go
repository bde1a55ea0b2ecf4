package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
)

// SeedAdmin creates the first CRM account from env. Skipped when the
// credentials are not set or the account already exists.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Admin{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.Admin{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}
