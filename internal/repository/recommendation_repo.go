package repository

import (
	"context"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecommendationRepository interface {
	Create(ctx context.Context, rec *model.CostRecommendation) error
	List(ctx context.Context, userID uuid.UUID, includeImplemented bool) ([]model.CostRecommendation, error)
	// ExistsOpen reports whether an unimplemented recommendation of the same
	// type already targets the recipe, so the analyzer does not pile up
	// duplicates on every sweep.
	ExistsOpen(ctx context.Context, userID, recipeID uuid.UUID, recType string) (bool, error)
	MarkImplemented(ctx context.Context, userID, id uuid.UUID) error
	DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error
}

type recommendationRepo struct{ db *gorm.DB }

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepo{db: db}
}

func (r *recommendationRepo) Create(ctx context.Context, rec *model.CostRecommendation) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recommendationRepo) List(ctx context.Context, userID uuid.UUID, includeImplemented bool) ([]model.CostRecommendation, error) {
	q := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID)
	if !includeImplemented {
		q = q.Where("is_implemented = false")
	}
	var recs []model.CostRecommendation
	err := q.Order("created_at DESC").Find(&recs).Error
	return recs, err
}

func (r *recommendationRepo) ExistsOpen(ctx context.Context, userID, recipeID uuid.UUID, recType string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CostRecommendation{}).
		Where("user_id = ? AND recipe_id = ? AND recommendation_type = ? AND is_implemented = false",
			userID, recipeID, recType).
		Count(&n).Error
	return n > 0, err
}

func (r *recommendationRepo) MarkImplemented(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CostRecommendation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_implemented", true).Error
}

func (r *recommendationRepo) DeleteForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&model.CostRecommendation{}).Error
}
