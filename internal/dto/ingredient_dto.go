package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateIngredientRequest struct {
	Name         string          `json:"name"           validate:"required,min=2,max=120"`
	Unit         string          `json:"unit"           validate:"required"`
	Category     string          `json:"category"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"min=0"`
	Supplier     *string         `json:"supplier"`
}

type UpdateIngredientRequest struct {
	Name         *string          `json:"name"           validate:"omitempty,min=2,max=120"`
	Unit         *string          `json:"unit"`
	Category     *string          `json:"category"`
	MinStock     *decimal.Decimal `json:"min_stock"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	Supplier     *string          `json:"supplier"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type IngredientFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredientResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Unit                string          `json:"unit"`
	Category            string          `json:"category"`
	CurrentStock        decimal.Decimal `json:"current_stock"`
	MinStock            decimal.Decimal `json:"min_stock"`
	WeightedAverageCost decimal.Decimal `json:"weighted_average_cost"`
	PricePerUnit        decimal.Decimal `json:"price_per_unit"`
	Supplier            *string         `json:"supplier"`
	LowStock            bool            `json:"low_stock"`
}

type IngredientListResponse struct {
	Items []IngredientResponse `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
