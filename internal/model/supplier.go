package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier aggregates purchase statistics per supplier name. Rows are
// upserted best-effort by the purchase pipeline; counters may lag behind the
// purchase history when a sync step fails.
type Supplier struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_supplier_user_name,unique"`
	Name   string    `gorm:"not null;index:idx_supplier_user_name,unique"`
	Phone  *string

	TotalPurchases   int             `gorm:"not null;default:0"`
	TotalSpent       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	LastPurchaseDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
