package repository

import (
	"context"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error)
	// ListDeliveredInRange is the report query: DELIVERED orders whose
	// delivery_date falls inside [start, end], items and recipes preloaded.
	ListDeliveredInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.Order, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) error
	Update(ctx context.Context, o *model.Order) error
	CountForDay(ctx context.Context, userID uuid.UUID, day time.Time) (int64, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Recipe").
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, userID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID)

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		q = q.Where("delivery_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("delivery_date <= ?", filter.EndDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Recipe").
		Order("delivery_date DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) ListDeliveredInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Recipe").
		Where("user_id = ? AND status = ? AND delivery_date >= ? AND delivery_date <= ?",
			userID, model.OrderDelivered, start, end).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status).Error
}

func (r *orderRepo) Update(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) CountForDay(ctx context.Context, userID uuid.UUID, day time.Time) (int64, error) {
	var n int64
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, start.AddDate(0, 0, 1)).
		Count(&n).Error
	return n, err
}
