package dto

import "github.com/shopspring/decimal"

// GenerateRecipeRequest drives the AI recipe generator.
type GenerateRecipeRequest struct {
	Prompt       string `json:"prompt"     validate:"required,min=3,max=500"`
	Servings     int    `json:"servings"   validate:"omitempty,min=1,max=1000"`
	TargetMargin int    `json:"target_margin_pct" validate:"omitempty,min=0,max=95"`
}

// AIIngredient is one ingredient line as returned by the model, annotated
// with the inventory match and cost estimate.
type AIIngredient struct {
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	MatchedID     *string         `json:"matched_ingredient_id"`
	MatchedName   *string         `json:"matched_ingredient_name"`
	MatchQuality  string          `json:"match_quality"` // exact | substring | token | fallback
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type GeneratedRecipeResponse struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	YieldPcs      int             `json:"yield_pcs"`
	Ingredients   []AIIngredient  `json:"ingredients"`
	Instructions  []string        `json:"instructions"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
}
