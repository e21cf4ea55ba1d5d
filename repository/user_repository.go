package repository

import (
	"context"
	"errors"

	"storefront/models"

	"gorm.io/gorm"
)

// ErrEmailTaken is returned by Create when a user with the same email
// already exists.
var ErrEmailTaken = errors.New("email already in use")

type UserRepository interface {
	// FindByEmail returns (nil, nil) when no user matches; absence is not an
	// error (guest checkout depends on this).
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}
