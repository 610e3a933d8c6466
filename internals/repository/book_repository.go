package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"library-service/internals/apperrors"
	"library-service/internals/models"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.BookModel) error
	Save(ctx context.Context, book *models.BookModel) error
	Delete(ctx context.Context, book *models.BookModel) error
	FindById(ctx context.Context, id uint) (*models.BookModel, error)
	FindByISBN(ctx context.Context, isbn string) (*models.BookModel, error)
	FindAll(ctx context.Context, offset, limit int) ([]models.BookModel, error)
}

type bookRepo struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepo{db: db}
}

func (r *bookRepo) Create(ctx context.Context, book *models.BookModel) error {
	result := r.db.WithContext(ctx).Create(book)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return apperrors.Conflict("Book with this ISBN already exists")
		}
		return apperrors.Internal("failed to insert book", result.Error)
	}
	return nil
}

func (r *bookRepo) Save(ctx context.Context, book *models.BookModel) error {
	result := r.db.WithContext(ctx).Save(book)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return apperrors.Conflict("Book with this ISBN already exists")
		}
		return apperrors.Internal("failed to update book", result.Error)
	}
	return nil
}

func (r *bookRepo) Delete(ctx context.Context, book *models.BookModel) error {
	result := r.db.WithContext(ctx).Delete(book)
	if result.Error != nil {
		return apperrors.Internal("failed to delete book", result.Error)
	}
	return nil
}

func (r *bookRepo) FindById(ctx context.Context, id uint) (*models.BookModel, error) {
	var book models.BookModel
	result := r.db.WithContext(ctx).First(&book, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Book")
		}
		return nil, apperrors.Internal("failed to fetch book", result.Error)
	}
	return &book, nil
}

func (r *bookRepo) FindByISBN(ctx context.Context, isbn string) (*models.BookModel, error) {
	var book models.BookModel
	result := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Book")
		}
		return nil, apperrors.Internal("failed to fetch book", result.Error)
	}
	return &book, nil
}

func (r *bookRepo) FindAll(ctx context.Context, offset, limit int) ([]models.BookModel, error) {
	books := make([]models.BookModel, 0)
	result := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id").Find(&books)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to fetch books", result.Error)
	}
	return books, nil
}
