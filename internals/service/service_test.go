package service

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"library-service/internals/models"
)

// newTestDB opens a throwaway SQLite database. _txlock=immediate makes
// concurrent transactions queue instead of failing on lock upgrade, which the
// concurrency tests rely on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "library_test.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.BookModel{},
		&models.ReaderModel{},
		&models.LoanModel{},
	))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func createTestBook(t *testing.T, db *gorm.DB, title string, copies int) *models.BookModel {
	t.Helper()
	book := &models.BookModel{Title: title, Author: "Test Author", Copies: copies}
	require.NoError(t, db.Create(book).Error)
	return book
}

func createTestReader(t *testing.T, db *gorm.DB, name, email string) *models.ReaderModel {
	t.Helper()
	reader := &models.ReaderModel{Name: name, Email: email}
	require.NoError(t, db.Create(reader).Error)
	return reader
}

func bookCopies(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var book models.BookModel
	require.NoError(t, db.First(&book, id).Error)
	return book.Copies
}

func loanByID(t *testing.T, db *gorm.DB, id uint) *models.LoanModel {
	t.Helper()
	var loan models.LoanModel
	require.NoError(t, db.First(&loan, id).Error)
	return &loan
}

func openLoanCount(t *testing.T, db *gorm.DB, bookID, readerID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.LoanModel{}).
		Where("book_id = ? AND reader_id = ? AND returned = ?", bookID, readerID, false).
		Count(&count).Error)
	return count
}
