package repository

import (
	"context"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, p *model.IngredientPurchase) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.IngredientPurchase, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.PurchaseFilter) ([]model.IngredientPurchase, int64, error)
	Update(ctx context.Context, p *model.IngredientPurchase) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetExpenseID(ctx context.Context, id uuid.UUID, expenseID *uuid.UUID) error
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) Create(ctx context.Context, p *model.IngredientPurchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.IngredientPurchase, error) {
	var p model.IngredientPurchase
	err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, userID uuid.UUID, filter dto.PurchaseFilter) ([]model.IngredientPurchase, int64, error) {
	var purchases []model.IngredientPurchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.IngredientPurchase{}).
		Where("user_id = ?", userID)

	if filter.IngredientID != "" {
		q = q.Where("ingredient_id = ?", filter.IngredientID)
	}
	if filter.Supplier != "" {
		q = q.Where("supplier ILIKE ?", "%"+filter.Supplier+"%")
	}
	if filter.StartDate != "" {
		q = q.Where("purchase_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("purchase_date <= ?", filter.EndDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Ingredient").
		Order("purchase_date DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) Update(ctx context.Context, p *model.IngredientPurchase) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *purchaseRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.IngredientPurchase{}).Error
}

func (r *purchaseRepo) SetExpenseID(ctx context.Context, id uuid.UUID, expenseID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.IngredientPurchase{}).
		Where("id = ?", id).
		Update("expense_id", expenseID).Error
}
