package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"library-service/internals/apperrors"
	"library-service/internals/models"
)

type LoanRepository interface {
	Create(ctx context.Context, loan *models.LoanModel) error
	Save(ctx context.Context, loan *models.LoanModel) error
	FindOpen(ctx context.Context, bookID, readerID uint) (*models.LoanModel, error)
	CountOpenByReader(ctx context.Context, readerID uint) (int64, error)
	CountOpenByBook(ctx context.Context, bookID uint) (int64, error)
	FindOpenByReader(ctx context.Context, readerID uint) ([]models.LoanModel, error)
	FindAll(ctx context.Context) ([]models.LoanModel, error)
}

type loanRepo struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepo{db: db}
}

func (r *loanRepo) Create(ctx context.Context, loan *models.LoanModel) error {
	result := r.db.WithContext(ctx).Create(loan)
	if result.Error != nil {
		return apperrors.Internal("failed to insert loan", result.Error)
	}
	return nil
}

func (r *loanRepo) Save(ctx context.Context, loan *models.LoanModel) error {
	result := r.db.WithContext(ctx).Save(loan)
	if result.Error != nil {
		return apperrors.Internal("failed to update loan", result.Error)
	}
	return nil
}

func (r *loanRepo) FindOpen(ctx context.Context, bookID, readerID uint) (*models.LoanModel, error) {
	var loan models.LoanModel
	result := r.db.WithContext(ctx).
		Where("book_id = ? AND reader_id = ? AND returned = ?", bookID, readerID, false).
		First(&loan)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Loan")
		}
		return nil, apperrors.Internal("failed to fetch loan", result.Error)
	}
	return &loan, nil
}

func (r *loanRepo) CountOpenByReader(ctx context.Context, readerID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.LoanModel{}).
		Where("reader_id = ? AND returned = ?", readerID, false).
		Count(&count)
	if result.Error != nil {
		return 0, apperrors.Internal("failed to count open loans", result.Error)
	}
	return count, nil
}

func (r *loanRepo) CountOpenByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.LoanModel{}).
		Where("book_id = ? AND returned = ?", bookID, false).
		Count(&count)
	if result.Error != nil {
		return 0, apperrors.Internal("failed to count open loans", result.Error)
	}
	return count, nil
}

func (r *loanRepo) FindOpenByReader(ctx context.Context, readerID uint) ([]models.LoanModel, error) {
	loans := make([]models.LoanModel, 0)
	result := r.db.WithContext(ctx).
		Where("reader_id = ? AND returned = ?", readerID, false).
		Order("id").
		Find(&loans)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to fetch loans", result.Error)
	}
	return loans, nil
}

func (r *loanRepo) FindAll(ctx context.Context) ([]models.LoanModel, error) {
	loans := make([]models.LoanModel, 0)
	result := r.db.WithContext(ctx).Order("id").Find(&loans)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to fetch loans", result.Error)
	}
	return loans, nil
}
