package bootstrap

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Order{},
		&entity.Like{},
		&entity.Work{},
		&entity.ChatRoom{},
		&entity.ChatMessage{},
		&entity.Review{},
	)
}

// SeedAdminUser creates the bootstrap staff account in development. The
// credentials can be overridden with ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@oreumshop.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Email:        email,
		Nickname:     "admin",
		PasswordHash: string(hashed),
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user seeded: %s", email)
	return nil
}
