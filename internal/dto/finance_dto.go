package dto

import "github.com/shopspring/decimal"

type CreateFinancialRecordRequest struct {
	Type        string          `json:"type"     validate:"required,oneof=INCOME EXPENSE"`
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount"   validate:"required"`
	Description string          `json:"description"`
	Date        string          `json:"date"     validate:"required,datetime=2006-01-02"`
}

type FinanceFilter struct {
	Type      string `form:"type" validate:"omitempty,oneof=INCOME EXPENSE"`
	Category  string `form:"category"`
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// RecordMetadata mirrors the wire shape of the original ledger metadata
// object; internally the fields are typed columns.
type RecordMetadata struct {
	AutoSynced    bool    `json:"auto_synced"`
	Source        *string `json:"source,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
}

type FinancialRecordResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Metadata    RecordMetadata  `json:"metadata"`
}

type FinanceListResponse struct {
	Items        []FinancialRecordResponse `json:"items"`
	Total        int64                     `json:"total"`
	TotalIncome  decimal.Decimal           `json:"total_income"`
	TotalExpense decimal.Decimal           `json:"total_expense"`
	Page         int                       `json:"page"`
	Limit        int                       `json:"limit"`
}
