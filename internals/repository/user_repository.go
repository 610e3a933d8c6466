package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"library-service/internals/apperrors"
	"library-service/internals/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.UserModel) error
	FindByEmail(ctx context.Context, email string) (*models.UserModel, error)
	FindById(ctx context.Context, id uint) (*models.UserModel, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.UserModel) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return apperrors.Conflict("Email already registered")
		}
		return apperrors.Internal("failed to insert user", result.Error)
	}
	return nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	var user models.UserModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("failed to fetch user", result.Error)
	}
	return &user, nil
}

func (r *userRepo) FindById(ctx context.Context, id uint) (*models.UserModel, error) {
	var user models.UserModel
	result := r.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("failed to fetch user", result.Error)
	}
	return &user, nil
}
