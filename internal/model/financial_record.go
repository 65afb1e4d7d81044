package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Financial record types and auto-sync sources.
const (
	RecordIncome  = "INCOME"
	RecordExpense = "EXPENSE"

	SyncSourcePurchase = "purchase"
	SyncSourceStockTx  = "stock_transaction"
	SyncSourceOrder    = "order"
)

// FinancialRecord is one ledger line, entered by the user directly or
// auto-synced from an operational event (purchase, delivered order).
// Auto-synced rows are tagged with the source and the originating
// transaction id; the idempotency check on TransactionID is best-effort,
// not a unique constraint.
type FinancialRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null"` // INCOME | EXPENSE
	Category    string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description string
	Date        time.Time `gorm:"not null;index"`

	AutoSynced    bool       `gorm:"not null;default:false"`
	SyncSource    *string    `gorm:"type:varchar(30)"`
	TransactionID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
