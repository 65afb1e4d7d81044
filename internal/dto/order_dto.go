package dto

import "github.com/shopspring/decimal"

type OrderItemInput struct {
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
	Quantity int    `json:"quantity"  validate:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerName string           `json:"customer_name" validate:"required,min=2,max=120"`
	DeliveryDate string           `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	Notes        *string          `json:"notes"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED IN_PROGRESS READY DELIVERED CANCELLED"`
}

type OrderFilter struct {
	Status    string `form:"status" validate:"omitempty,oneof=PENDING CONFIRMED IN_PROGRESS READY DELIVERED CANCELLED"`
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type OrderItemResponse struct {
	RecipeID   string          `json:"recipe_id"`
	RecipeName string          `json:"recipe_name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	OrderNo      string              `json:"order_no"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	DeliveryDate string              `json:"delivery_date"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Notes        *string             `json:"notes"`
	Items        []OrderItemResponse `json:"items"`
	// SyncWarnings reports best-effort side effects of a DELIVERED
	// transition (stock usage, income sync) that failed.
	SyncWarnings []string `json:"sync_warnings,omitempty"`
}

type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
