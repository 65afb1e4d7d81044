package service

import (
	"context"
	"errors"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/costing"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// HPPService keeps recipe production costs (HPP) in line with ingredient
// WACs. It is triggered by purchase mutations and recipe edits.
type HPPService interface {
	// RecalculateRecipe recomputes one recipe's cost_per_unit and margin from
	// its preloaded ingredient lines.
	RecalculateRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	// OnIngredientCostChange fans out to every recipe referencing the
	// ingredient. Returns the number of recipes touched.
	OnIngredientCostChange(ctx context.Context, userID, ingredientID uuid.UUID) error
}

type hppService struct {
	recipes repository.RecipeRepository
}

func NewHPPService(recipes repository.RecipeRepository) HPPService {
	return &hppService{recipes: recipes}
}

func (s *hppService) RecalculateRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	rec, err := s.recipes.FindByID(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.recalculate(ctx, rec)
}

func (s *hppService) OnIngredientCostChange(ctx context.Context, userID, ingredientID uuid.UUID) error {
	recipes, err := s.recipes.FindByIngredientID(ctx, userID, ingredientID)
	if err != nil {
		return err
	}
	var firstErr error
	for i := range recipes {
		if err := s.recalculate(ctx, &recipes[i]); err != nil {
			log.Warn().Err(err).
				Str("recipe_id", recipes[i].ID.String()).
				Msg("hpp: recalculation failed for recipe")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *hppService) recalculate(ctx context.Context, rec *model.Recipe) error {
	cost := costing.RecipeCOGS(BatchItems(rec), rec.YieldPcs, LookupFromJoins(rec))
	margin := costing.MarginPct(cost, rec.SellingPrice)
	return s.recipes.UpdateCost(ctx, rec.ID, cost, margin)
}

// BatchItems converts a recipe's join rows into costing inputs.
func BatchItems(rec *model.Recipe) []costing.BatchItem {
	items := make([]costing.BatchItem, 0, len(rec.Ingredients))
	for _, ri := range rec.Ingredients {
		items = append(items, costing.BatchItem{
			IngredientID: ri.IngredientID,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		})
	}
	return items
}

// LookupFromJoins builds a WAC lookup from the preloaded ingredients of a
// recipe. Lines whose ingredient failed to preload contribute zero cost.
func LookupFromJoins(rec *model.Recipe) costing.WACLookup {
	costs := make(map[uuid.UUID]costing.IngredientCost, len(rec.Ingredients))
	for _, ri := range rec.Ingredients {
		if ri.Ingredient != nil {
			costs[ri.IngredientID] = costing.IngredientCost{
				WAC:  ri.Ingredient.WeightedAverageCost,
				Unit: ri.Ingredient.Unit,
			}
		}
	}
	return func(id uuid.UUID) (costing.IngredientCost, bool) {
		c, ok := costs[id]
		return c, ok
	}
}
