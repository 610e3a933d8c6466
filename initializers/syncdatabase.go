package initializers

import (
	"gorm.io/gorm"

	"library-service/internals/models"
)

// SyncDatabase synchronizes the schema with the models.
func SyncDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.BookModel{},
		&models.ReaderModel{},
		&models.LoanModel{},
	)
}
