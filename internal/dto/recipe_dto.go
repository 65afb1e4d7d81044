package dto

import "github.com/shopspring/decimal"

type RecipeIngredientInput struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"required"`
	Unit         string          `json:"unit"          validate:"required"`
}

type CreateRecipeRequest struct {
	Name         string                  `json:"name"          validate:"required,min=2,max=120"`
	Category     string                  `json:"category"`
	YieldPcs     int                     `json:"yield_pcs"     validate:"required,min=1"`
	SellingPrice decimal.Decimal         `json:"selling_price" validate:"min=0"`
	Instructions *string                 `json:"instructions"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"   validate:"required,min=1,dive"`
}

type UpdateRecipeRequest struct {
	Name         *string                 `json:"name"          validate:"omitempty,min=2,max=120"`
	Category     *string                 `json:"category"`
	YieldPcs     *int                    `json:"yield_pcs"     validate:"omitempty,min=1"`
	SellingPrice *decimal.Decimal        `json:"selling_price"`
	Instructions *string                 `json:"instructions"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"   validate:"omitempty,min=1,dive"`
}

type RecipeFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type RecipeIngredientResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	LineCost       decimal.Decimal `json:"line_cost"`
}

type RecipeResponse struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Category     string                     `json:"category"`
	YieldPcs     int                        `json:"yield_pcs"`
	CostPerUnit  decimal.Decimal            `json:"cost_per_unit"`
	SellingPrice decimal.Decimal            `json:"selling_price"`
	MarginPct    decimal.Decimal            `json:"margin_pct"`
	Instructions *string                    `json:"instructions"`
	Ingredients  []RecipeIngredientResponse `json:"ingredients"`
}

type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
