package repository

import (
	"context"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SupplierRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Supplier, error)
	// RecordPurchase upserts the per-supplier stats row: purchase count and
	// spend go up (or down, on reversal) and the last purchase date advances.
	RecordPurchase(ctx context.Context, userID uuid.UUID, name string, amount decimal.Decimal, countDelta int, when time.Time) error
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("total_spent DESC").
		Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) RecordPurchase(ctx context.Context, userID uuid.UUID, name string, amount decimal.Decimal, countDelta int, when time.Time) error {
	s := model.Supplier{
		UserID:           userID,
		Name:             name,
		TotalPurchases:   countDelta,
		TotalSpent:       amount,
		LastPurchaseDate: &when,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_purchases":    gorm.Expr("suppliers.total_purchases + ?", countDelta),
			"total_spent":        gorm.Expr("suppliers.total_spent + ?", amount),
			"last_purchase_date": when,
			"updated_at":         time.Now(),
		}),
	}).Create(&s).Error
}
