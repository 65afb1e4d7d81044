package repository

import (
	"context"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	Create(ctx context.Context, rec *model.Recipe) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.RecipeFilter) ([]model.Recipe, int64, error)
	// ListAllWithIngredients loads every active recipe with its join rows and
	// ingredients — the working set for reports and recommendation scans.
	ListAllWithIngredients(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
	// FindByIngredientID returns the recipes that reference an ingredient,
	// with join rows preloaded — the HPP trigger's fan-out query.
	FindByIngredientID(ctx context.Context, userID, ingredientID uuid.UUID) ([]model.Recipe, error)
	Update(ctx context.Context, rec *model.Recipe) error
	UpdateCost(ctx context.Context, id uuid.UUID, costPerUnit, marginPct decimal.Decimal) error
	ReplaceIngredients(ctx context.Context, recipeID uuid.UUID, items []model.RecipeIngredient) error
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error
}

type recipeRepo struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepo{db: db} }

func (r *recipeRepo) Create(ctx context.Context, rec *model.Recipe) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recipeRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	return &rec, err
}

func (r *recipeRepo) List(ctx context.Context, userID uuid.UUID, filter dto.RecipeFilter) ([]model.Recipe, int64, error) {
	var recipes []model.Recipe
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("user_id = ? AND active = true", userID)

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Ingredients.Ingredient").
		Order("name ASC").Limit(filter.Limit).Offset(offset).
		Find(&recipes).Error
	return recipes, total, err
}

func (r *recipeRepo) ListAllWithIngredients(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Where("user_id = ? AND active = true", userID).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepo) FindByIngredientID(ctx context.Context, userID, ingredientID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Joins("JOIN recipe_ingredients ri ON ri.recipe_id = recipes.id").
		Where("recipes.user_id = ? AND ri.ingredient_id = ? AND recipes.active = true", userID, ingredientID).
		Group("recipes.id").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepo) Update(ctx context.Context, rec *model.Recipe) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recipeRepo) UpdateCost(ctx context.Context, id uuid.UUID, costPerUnit, marginPct decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cost_per_unit": costPerUnit,
			"margin_pct":    marginPct,
		}).Error
}

func (r *recipeRepo) ReplaceIngredients(ctx context.Context, recipeID uuid.UUID, items []model.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].RecipeID = recipeID
		}
		return tx.Create(&items).Error
	})
}

func (r *recipeRepo) SoftDelete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("active", false).Error
}
