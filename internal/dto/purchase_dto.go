package dto

import "github.com/shopspring/decimal"

type CreatePurchaseRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"required,gt=0"`
	// A zero price is legitimate (free samples, bonuses); negatives are not.
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Supplier     *string         `json:"supplier"`
	PurchaseDate string          `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Notes        *string         `json:"notes"`
}

type UpdatePurchaseRequest struct {
	Quantity  *decimal.Decimal `json:"quantity"   validate:"omitempty,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
	Supplier  *string          `json:"supplier"`
	Notes     *string          `json:"notes"`
}

type PurchaseFilter struct {
	IngredientID string `form:"ingredient_id" validate:"omitempty,uuid"`
	Supplier     string `form:"supplier"`
	StartDate    string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type PurchaseResponse struct {
	ID             string          `json:"id"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Supplier       *string         `json:"supplier"`
	PurchaseDate   string          `json:"purchase_date"`
	Notes          *string         `json:"notes"`
	ExpenseID      *string         `json:"expense_id"`
	// SyncWarnings lists pipeline steps that failed best-effort after the
	// purchase row committed. Informational only — the write succeeded.
	SyncWarnings []string `json:"sync_warnings,omitempty"`
}

type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
