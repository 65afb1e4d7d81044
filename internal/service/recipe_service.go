package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/costing"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RecipeService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.RecipeResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.RecipeFilter) (*dto.RecipeListResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type recipeService struct {
	recipes         repository.RecipeRepository
	ingredients     repository.IngredientRepository
	recommendations repository.RecommendationRepository
	hpp             HPPService
}

func NewRecipeService(
	recipes repository.RecipeRepository,
	ingredients repository.IngredientRepository,
	recommendations repository.RecommendationRepository,
	hpp HPPService,
) RecipeService {
	return &recipeService{
		recipes:         recipes,
		ingredients:     ingredients,
		recommendations: recommendations,
		hpp:             hpp,
	}
}

func (s *recipeService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	items, err := s.resolveItems(ctx, userID, req.Ingredients)
	if err != nil {
		return nil, err
	}

	rec := &model.Recipe{
		UserID:       userID,
		Name:         req.Name,
		Category:     req.Category,
		YieldPcs:     req.YieldPcs,
		SellingPrice: req.SellingPrice,
		Instructions: req.Instructions,
		Active:       true,
		Ingredients:  items,
	}
	if err := s.recipes.Create(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.hpp.RecalculateRecipe(ctx, userID, rec.ID); err != nil {
		log.Warn().Err(err).Str("recipe_id", rec.ID.String()).Msg("recipe: initial cost calculation failed")
	}
	return s.Get(ctx, userID, rec.ID)
}

func (s *recipeService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.RecipeResponse, error) {
	rec, err := s.recipes.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return RecipeToResponse(rec), nil
}

func (s *recipeService) List(ctx context.Context, userID uuid.UUID, filter dto.RecipeFilter) (*dto.RecipeListResponse, error) {
	recipes, total, err := s.recipes.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		items = append(items, *RecipeToResponse(&recipes[i]))
	}
	return &dto.RecipeListResponse{
		Items: items, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

func (s *recipeService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	rec, err := s.recipes.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Category != nil {
		rec.Category = *req.Category
	}
	if req.YieldPcs != nil {
		rec.YieldPcs = *req.YieldPcs
	}
	if req.SellingPrice != nil {
		rec.SellingPrice = *req.SellingPrice
	}
	if req.Instructions != nil {
		rec.Instructions = req.Instructions
	}

	if req.Ingredients != nil {
		items, err := s.resolveItems(ctx, userID, req.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.recipes.ReplaceIngredients(ctx, rec.ID, items); err != nil {
			return nil, err
		}
	}

	rec.Ingredients = nil // avoid Save re-inserting stale join rows
	if err := s.recipes.Update(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.hpp.RecalculateRecipe(ctx, userID, rec.ID); err != nil {
		log.Warn().Err(err).Str("recipe_id", rec.ID.String()).Msg("recipe: cost recalculation failed")
	}
	return s.Get(ctx, userID, rec.ID)
}

func (s *recipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.recipes.FindByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.recipes.SoftDelete(ctx, userID, id); err != nil {
		return err
	}
	// Open recommendations for a retired recipe are noise; drop them.
	if err := s.recommendations.DeleteForRecipe(ctx, id); err != nil {
		log.Warn().Err(err).Str("recipe_id", id.String()).Msg("recipe: recommendation cleanup failed")
	}
	return nil
}

func (s *recipeService) resolveItems(ctx context.Context, userID uuid.UUID, inputs []dto.RecipeIngredientInput) ([]model.RecipeIngredient, error) {
	items := make([]model.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		ingredientID, err := uuid.Parse(in.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("invalid ingredient_id: %w", err)
		}
		if _, err := s.ingredients.FindByID(ctx, userID, ingredientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("ingredient %s: %w", in.IngredientID, ErrNotFound)
			}
			return nil, err
		}
		items = append(items, model.RecipeIngredient{
			IngredientID: ingredientID,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
		})
	}
	return items, nil
}

// RecipeToResponse maps a recipe with preloaded join rows to its wire shape,
// pricing each line against the ingredient's current WAC.
func RecipeToResponse(rec *model.Recipe) *dto.RecipeResponse {
	lines := make([]dto.RecipeIngredientResponse, 0, len(rec.Ingredients))
	for _, ri := range rec.Ingredients {
		line := dto.RecipeIngredientResponse{
			IngredientID: ri.IngredientID.String(),
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		}
		if ri.Ingredient != nil {
			line.IngredientName = ri.Ingredient.Name
			line.UnitCost = ri.Ingredient.WeightedAverageCost
			line.LineCost = costing.Convert(ri.Quantity, ri.Unit, ri.Ingredient.Unit).
				Mul(ri.Ingredient.WeightedAverageCost)
		}
		lines = append(lines, line)
	}
	return &dto.RecipeResponse{
		ID:           rec.ID.String(),
		Name:         rec.Name,
		Category:     rec.Category,
		YieldPcs:     rec.YieldPcs,
		CostPerUnit:  rec.CostPerUnit,
		SellingPrice: rec.SellingPrice,
		MarginPct:    rec.MarginPct,
		Instructions: rec.Instructions,
		Ingredients:  lines,
	}
}
