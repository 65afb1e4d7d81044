package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientPurchase is the primary write of the purchase pipeline. The row
// itself is the unit of success returned to the caller; stock, ledger and
// recipe-cost synchronization hang off it best-effort.
type IngredientPurchase struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Supplier     *string
	PurchaseDate time.Time `gorm:"not null;index"`
	Notes        *string
	// ExpenseID is a soft foreign key to the auto-synced FinancialRecord.
	// Nil when expense sync failed or never ran — deletion then cleans up nothing.
	ExpenseID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
