package repository

import (
	"context"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FinanceRepository interface {
	Create(ctx context.Context, rec *model.FinancialRecord) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.FinancialRecord, error)
	// FindByTransactionID is the best-effort idempotency probe of the
	// financial sync service — a lookup, not a unique constraint.
	FindByTransactionID(ctx context.Context, userID, transactionID uuid.UUID) (*model.FinancialRecord, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.FinanceFilter) ([]model.FinancialRecord, int64, error)
	// ListExpensesInRange returns non-revenue records for the report window.
	ListExpensesInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.FinancialRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type financeRepo struct{ db *gorm.DB }

func NewFinanceRepository(db *gorm.DB) FinanceRepository { return &financeRepo{db: db} }

func (r *financeRepo) Create(ctx context.Context, rec *model.FinancialRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *financeRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.FinancialRecord, error) {
	var rec model.FinancialRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	return &rec, err
}

func (r *financeRepo) FindByTransactionID(ctx context.Context, userID, transactionID uuid.UUID) (*model.FinancialRecord, error) {
	var rec model.FinancialRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND transaction_id = ?", userID, transactionID).
		First(&rec).Error
	return &rec, err
}

func (r *financeRepo) List(ctx context.Context, userID uuid.UUID, filter dto.FinanceFilter) ([]model.FinancialRecord, int64, error) {
	var records []model.FinancialRecord
	var total int64

	q := r.db.WithContext(ctx).Model(&model.FinancialRecord{}).
		Where("user_id = ?", userID)

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.StartDate != "" {
		q = q.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("date <= ?", filter.EndDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("date DESC").Limit(filter.Limit).Offset(offset).Find(&records).Error
	return records, total, err
}

func (r *financeRepo) ListExpensesInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.FinancialRecord, error) {
	var records []model.FinancialRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, model.RecordExpense, start, end).
		Find(&records).Error
	return records, err
}

func (r *financeRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.FinancialRecord{}).Error
}
