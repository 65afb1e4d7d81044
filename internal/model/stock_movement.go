package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock movement types.
const (
	MovementPurchase   = "purchase"
	MovementReversal   = "reversal"
	MovementAdjustment = "adjustment"
	MovementUsage      = "usage"
)

// StockMovement records every stock change on an ingredient, created
// automatically by the inventory sync service.
type StockMovement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         string          `gorm:"not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(14,3);not null"` // positive = in, negative = out
	StockBefore  decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	StockAfter   decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Reason       string
	ReferenceID  *uuid.UUID `gorm:"type:uuid"` // purchase_id or order_id if applicable
	CreatedAt    time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (StockMovement) TableName() string { return "stock_movements" }
