package repository

import (
	"context"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IngredientRepository defines the data access contract for ingredients.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type IngredientRepository interface {
	Create(ctx context.Context, ing *model.Ingredient) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Ingredient, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.IngredientFilter) ([]model.Ingredient, int64, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]model.Ingredient, error)
	Update(ctx context.Context, ing *model.Ingredient) error
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error

	// ApplyStockDelta performs the stock/WAC write of the inventory sync
	// service in one conditional UPDATE: the stock arithmetic runs inside the
	// database (no read-modify-write on current_stock) and the WAC column is
	// guarded by its expected prior value. Returns the number of rows hit —
	// zero means the optimistic guard failed and the caller should re-read
	// and retry once.
	ApplyStockDelta(ctx context.Context, userID, id uuid.UUID, delta, expectedWAC, newWAC decimal.Decimal) (int64, error)

	// AddStock adjusts current_stock without touching the WAC (usage,
	// manual adjustments).
	AddStock(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ing).Error
	return &ing, err
}

func (r *ingredientRepo) List(ctx context.Context, userID uuid.UUID, filter dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	var ingredients []model.Ingredient
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("user_id = ? AND active = true", userID)

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.LowStock {
		q = q.Where("current_stock < min_stock")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&ingredients).Error
	return ingredients, total, err
}

func (r *ingredientRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = true", userID).
		Order("name ASC").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) Update(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *ingredientRepo) SoftDelete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("active", false).Error
}

func (r *ingredientRepo) ApplyStockDelta(ctx context.Context, userID, id uuid.UUID, delta, expectedWAC, newWAC decimal.Decimal) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id = ? AND user_id = ? AND weighted_average_cost = ?", id, userID, expectedWAC).
		Updates(map[string]interface{}{
			"current_stock":         gorm.Expr("current_stock + ?", delta),
			"weighted_average_cost": newWAC,
		})
	return res.RowsAffected, res.Error
}

func (r *ingredientRepo) AddStock(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("current_stock", gorm.Expr("current_stock + ?", delta)).Error
}
