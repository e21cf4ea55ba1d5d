package repository

import (
	"context"
	"errors"

	"storefront/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicatePaymentReference is returned by CreateWithItems when an order
// with the same payment reference already exists. Concurrent reconcile
// callers use it to detect that they lost the insert race.
var ErrDuplicatePaymentReference = errors.New("order with this payment reference already exists")

// OrderRepository defines the interface for order data access. Lookup methods
// return (nil, nil) when no row matches.
type OrderRepository interface {
	FindByPaymentReference(ctx context.Context, ref string) (*models.Order, error)
	CreateWithItems(ctx context.Context, order *models.Order) error
	FindByEmail(ctx context.Context, email string, limit int) ([]models.Order, error)
	FindByIDAndEmail(ctx context.Context, id uuid.UUID, email string) (*models.Order, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByPaymentReference(ctx context.Context, ref string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("payment_reference = ?", ref).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateWithItems inserts the order and its items in a single transaction.
// The Product field on items is not persisted here; products are owned by the
// catalog and only referenced.
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Omit("Items.Product").Create(order).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return ErrDuplicatePaymentReference
	}
	return err
}

func (r *GormOrderRepository) FindByEmail(ctx context.Context, email string, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByIDAndEmail(ctx context.Context, id uuid.UUID, email string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("id = ? AND email = ?", id, email).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// isUniqueViolation matches both gorm's translated error and the raw
// Postgres error code, in case translation is disabled.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
