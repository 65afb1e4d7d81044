package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Only DELIVERED orders count toward realized revenue/COGS.
const (
	OrderPending    = "PENDING"
	OrderConfirmed  = "CONFIRMED"
	OrderInProgress = "IN_PROGRESS"
	OrderReady      = "READY"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
)

// Order is a customer order with line items referencing recipes. History is
// immutable once delivered — reports rely on that.
type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderNo      string    `gorm:"not null;index"`
	CustomerName string    `gorm:"not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	DeliveryDate time.Time `gorm:"not null;index"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem is one order line priced at the recipe's selling price at the
// time the order was created.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecipeID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
