package dto

import "github.com/shopspring/decimal"

// ReportQuery binds GET /api/reports/profit query parameters.
type ReportQuery struct {
	StartDate string `form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"required,datetime=2006-01-02"`
	Period    string `form:"period,default=daily" validate:"oneof=daily weekly monthly yearly"`
}

// ProductProfit is per-product profitability over the report window.
type ProductProfit struct {
	RecipeID    string          `json:"recipe_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	MarginPct   decimal.Decimal `json:"margin_pct"` // 0 when revenue is 0
}

// PeriodBucket groups revenue/COGS by the report period key
// (daily = ISO date, weekly = Sunday-aligned week start date,
// monthly = YYYY-MM, yearly = YYYY).
type PeriodBucket struct {
	Period      string          `json:"period"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	OrderCount  int             `json:"order_count"`
}

// IngredientShare is one slice of the COGS-by-ingredient breakdown.
type IngredientShare struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"` // all zero when total COGS is 0
}

type ProfitReportResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Period    string `json:"period"`

	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCOGS      decimal.Decimal `json:"total_cogs"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	GrossMarginPct decimal.Decimal `json:"gross_margin_pct"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	NetMarginPct   decimal.Decimal `json:"net_margin_pct"`

	Buckets             []PeriodBucket    `json:"buckets"`
	Products            []ProductProfit   `json:"products"`
	TopProducts         []ProductProfit   `json:"top_products"`
	BottomProducts      []ProductProfit   `json:"bottom_products"`
	IngredientBreakdown []IngredientShare `json:"ingredient_breakdown"`
}

type SupplierResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	TotalPurchases   int             `json:"total_purchases"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	LastPurchaseDate *string         `json:"last_purchase_date"`
}

type RecommendationResponse struct {
	ID                 string          `json:"id"`
	RecipeID           string          `json:"recipe_id"`
	RecipeName         string          `json:"recipe_name"`
	RecommendationType string          `json:"recommendation_type"`
	Description        string          `json:"description"`
	PotentialSavings   decimal.Decimal `json:"potential_savings"`
	Priority           string          `json:"priority"`
	IsImplemented      bool            `json:"is_implemented"`
}
