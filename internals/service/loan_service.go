package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"library-service/internals/apperrors"
	"library-service/internals/models"
	"library-service/internals/repository"
)

const maxOpenLoansPerReader = 3

// LoanService is the lending ledger. Borrow and Return each run as one
// database transaction so the check-then-act sequence (copy availability,
// reader limit, duplicate borrow) observes a consistent snapshot and the loan
// write commits together with the copy-count adjustment.
type LoanService struct {
	db      *gorm.DB
	loans   repository.LoanRepository
	readers repository.ReaderRepository
	now     Clock
	log     *logrus.Logger
}

func NewLoanService(db *gorm.DB, loans repository.LoanRepository, readers repository.ReaderRepository, now Clock, log *logrus.Logger) *LoanService {
	if now == nil {
		now = time.Now
	}
	return &LoanService{db: db, loans: loans, readers: readers, now: now, log: log}
}

// lockForUpdate adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite has no row locks; its single-writer transaction lock gives the same
// serialization for the write path.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Borrow checks lending policy and records a new open loan while decrementing
// the book's available copies. Check order is fixed: book existence, copy
// availability, reader existence, reader limit, duplicate borrow.
func (s *LoanService) Borrow(ctx context.Context, bookID, readerID uint) (*models.LoanModel, error) {
	var loan *models.LoanModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.BookModel
		if err := lockForUpdate(tx).First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Book")
			}
			return apperrors.Internal("failed to fetch book", err)
		}
		if book.Copies <= 0 {
			return apperrors.ErrNoAvailableCopies
		}

		var reader models.ReaderModel
		if err := lockForUpdate(tx).First(&reader, readerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Reader")
			}
			return apperrors.Internal("failed to fetch reader", err)
		}

		var openCount int64
		err := tx.Model(&models.LoanModel{}).
			Where("reader_id = ? AND returned = ?", readerID, false).
			Count(&openCount).Error
		if err != nil {
			return apperrors.Internal("failed to count open loans", err)
		}
		if openCount >= maxOpenLoansPerReader {
			return apperrors.ErrReaderLimitExceeded
		}

		var existing int64
		err = tx.Model(&models.LoanModel{}).
			Where("book_id = ? AND reader_id = ? AND returned = ?", bookID, readerID, false).
			Count(&existing).Error
		if err != nil {
			return apperrors.Internal("failed to check open loan", err)
		}
		if existing > 0 {
			return apperrors.ErrAlreadyBorrowed
		}

		loan = &models.LoanModel{
			BookID:     bookID,
			ReaderID:   readerID,
			BorrowDate: s.now(),
		}
		if err := tx.Create(loan).Error; err != nil {
			return apperrors.Internal("failed to insert loan", err)
		}

		// Guarded decrement: the copies > 0 predicate rechecks availability at
		// write time, so a concurrent borrow that slipped past the read cannot
		// drive the count negative.
		decrement := tx.Model(&models.BookModel{}).
			Where("id = ? AND copies > 0", bookID).
			UpdateColumn("copies", gorm.Expr("copies - 1"))
		if decrement.Error != nil {
			return apperrors.Internal("failed to decrement copies", decrement.Error)
		}
		if decrement.RowsAffected == 0 {
			return apperrors.ErrNoAvailableCopies
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"book_id": bookID, "reader_id": readerID, "loan_id": loan.ID}).Info("book borrowed")
	return loan, nil
}

// Return closes the open loan for the pair and puts the copy back on the
// shelf. A concurrent return of the same loan serializes behind the first and
// fails NotBorrowed, so copies are never double-incremented.
func (s *LoanService) Return(ctx context.Context, bookID, readerID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.BookModel
		if err := lockForUpdate(tx).First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotBorrowed
			}
			return apperrors.Internal("failed to fetch book", err)
		}

		var loan models.LoanModel
		err := tx.Where("book_id = ? AND reader_id = ? AND returned = ?", bookID, readerID, false).
			First(&loan).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotBorrowed
			}
			return apperrors.Internal("failed to fetch loan", err)
		}

		closed := tx.Model(&models.LoanModel{}).
			Where("id = ? AND returned = ?", loan.ID, false).
			Updates(map[string]interface{}{
				"returned":    true,
				"return_date": s.now(),
			})
		if closed.Error != nil {
			return apperrors.Internal("failed to close loan", closed.Error)
		}
		if closed.RowsAffected == 0 {
			return apperrors.ErrNotBorrowed
		}

		increment := tx.Model(&models.BookModel{}).
			Where("id = ?", bookID).
			UpdateColumn("copies", gorm.Expr("copies + 1"))
		if increment.Error != nil {
			return apperrors.Internal("failed to increment copies", increment.Error)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"book_id": bookID, "reader_id": readerID}).Info("book returned")
	return nil
}

// ListOpenForReader returns the reader's currently open loans.
func (s *LoanService) ListOpenForReader(ctx context.Context, readerID uint) ([]models.LoanModel, error) {
	if _, err := s.readers.FindById(ctx, readerID); err != nil {
		return nil, err
	}
	return s.loans.FindOpenByReader(ctx, readerID)
}

// ListAll returns every loan ever recorded, open or closed.
func (s *LoanService) ListAll(ctx context.Context) ([]models.LoanModel, error) {
	return s.loans.FindAll(ctx)
}
