package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"library-service/internals/apperrors"
	"library-service/internals/models"
)

type ReaderRepository interface {
	Create(ctx context.Context, reader *models.ReaderModel) error
	Save(ctx context.Context, reader *models.ReaderModel) error
	Delete(ctx context.Context, reader *models.ReaderModel) error
	FindById(ctx context.Context, id uint) (*models.ReaderModel, error)
	FindByEmail(ctx context.Context, email string) (*models.ReaderModel, error)
	FindAll(ctx context.Context, offset, limit int) ([]models.ReaderModel, error)
}

type readerRepo struct {
	db *gorm.DB
}

func NewReaderRepository(db *gorm.DB) ReaderRepository {
	return &readerRepo{db: db}
}

func (r *readerRepo) Create(ctx context.Context, reader *models.ReaderModel) error {
	result := r.db.WithContext(ctx).Create(reader)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return apperrors.Conflict("Reader with this email already exists")
		}
		return apperrors.Internal("failed to insert reader", result.Error)
	}
	return nil
}

func (r *readerRepo) Save(ctx context.Context, reader *models.ReaderModel) error {
	result := r.db.WithContext(ctx).Save(reader)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return apperrors.Conflict("Reader with this email already exists")
		}
		return apperrors.Internal("failed to update reader", result.Error)
	}
	return nil
}

func (r *readerRepo) Delete(ctx context.Context, reader *models.ReaderModel) error {
	result := r.db.WithContext(ctx).Delete(reader)
	if result.Error != nil {
		return apperrors.Internal("failed to delete reader", result.Error)
	}
	return nil
}

func (r *readerRepo) FindById(ctx context.Context, id uint) (*models.ReaderModel, error) {
	var reader models.ReaderModel
	result := r.db.WithContext(ctx).First(&reader, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Reader")
		}
		return nil, apperrors.Internal("failed to fetch reader", result.Error)
	}
	return &reader, nil
}

func (r *readerRepo) FindByEmail(ctx context.Context, email string) (*models.ReaderModel, error) {
	var reader models.ReaderModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&reader)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Reader")
		}
		return nil, apperrors.Internal("failed to fetch reader", result.Error)
	}
	return &reader, nil
}

func (r *readerRepo) FindAll(ctx context.Context, offset, limit int) ([]models.ReaderModel, error) {
	readers := make([]models.ReaderModel, 0)
	result := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id").Find(&readers)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to fetch readers", result.Error)
	}
	return readers, nil
}
