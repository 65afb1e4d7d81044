package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe holds a product recipe and its cost of production (HPP).
// CostPerUnit = Σ(ingredient WAC × quantity per batch) / YieldPcs, recomputed
// whenever a referenced ingredient's WAC changes.
type Recipe struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"index;not null"`
	Category string
	YieldPcs int `gorm:"not null;default:1"`

	CostPerUnit  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	// MarginPct is derived from (SellingPrice - CostPerUnit) / SellingPrice * 100
	MarginPct decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`

	Instructions *string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID"`
}

// RecipeIngredient joins a recipe to an ingredient with the quantity used per
// batch. Unit may differ from the ingredient's stock unit (e.g. recipe in
// gram, ingredient priced per kg) — costing converts via the fixed table.
type RecipeIngredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipeID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_recipe_ingredient,unique"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index:idx_recipe_ingredient,unique;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Unit         string          `gorm:"not null"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
