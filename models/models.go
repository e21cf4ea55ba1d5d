package models

import (
	"time"

	"github.com/google/uuid"
)

// Orders are only created after the gateway confirms the charge, so there is
// no pending state in the lifecycle.
const OrderStatusCompleted = "COMPLETED"

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Order is uniquely identified by its PaymentReference; the unique index is
// the synchronization point for concurrent reconciliation.
type Order struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PaymentReference string      `gorm:"uniqueIndex;not null" json:"payment_reference"`
	Email            string      `gorm:"index;not null" json:"email"`
	UserID           *uuid.UUID  `gorm:"type:uuid;index" json:"user_id,omitempty"`
	TotalCents       int64       `gorm:"not null" json:"total_cents"`
	Status           string      `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt        time.Time   `gorm:"autoCreateTime" json:"created_at"`
	Items            []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem captures the unit price at order-creation time; later catalog
// price changes must not alter it.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID  int64     `gorm:"not null" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	Product    Product   `gorm:"foreignKey:ProductID" json:"product"`
}
