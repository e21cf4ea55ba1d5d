package repository

import (
	"context"

	"storefront/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	FindAll(ctx context.Context, page, perPage int) ([]models.Product, int64, error)
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDs resolves a batch of product ids in one query. Missing ids are
// simply absent from the result; callers decide whether that is an error.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll retrieves paginated products, newest first.
func (r *GormProductRepository) FindAll(ctx context.Context, page, perPage int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(perPage).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
