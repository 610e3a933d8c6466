package initializers

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"library-service/internals/config"
	"library-service/internals/models"
)

// SeedAdmin creates the initial account from ADMIN_EMAIL/ADMIN_PASSWORD when
// both are set and no account with that email exists yet.
func SeedAdmin(db *gorm.DB, cfg config.Config, log *logrus.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	var existing models.UserModel
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.UserModel{
		Email:          cfg.AdminEmail,
		HashedPassword: string(hash),
		IsActive:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.WithField("email", cfg.AdminEmail).Info("seeded admin user")
	return nil
}
