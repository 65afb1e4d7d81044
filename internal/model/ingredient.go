package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient tracks raw-material stock and its running weighted average cost.
// WeightedAverageCost reflects the quantity-weighted mean of the purchase
// costs currently blended into stock. It is updated incrementally on every
// purchase mutation, never recomputed from full history.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"index;not null"`
	Unit     string    `gorm:"not null;default:'gram'"`
	Category string

	CurrentStock        decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	MinStock            decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	WeightedAverageCost decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	// PricePerUnit is the reference (last known list) price, distinct from WAC.
	PricePerUnit decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`

	Supplier  *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
