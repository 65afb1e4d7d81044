package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Analyzer thresholds.
var (
	lowMarginThreshold = decimal.NewFromInt(30)  // percent
	costSpikeFactor    = decimal.NewFromFloat(1.2) // WAC vs reference price
)

// RecommendationService runs the periodic margin analysis and serves its
// results. AnalyzeUser also satisfies the worker pool's CostAnalyzer.
type RecommendationService interface {
	AnalyzeUser(ctx context.Context, userID uuid.UUID) (int, error)
	List(ctx context.Context, userID uuid.UUID, includeImplemented bool) ([]dto.RecommendationResponse, error)
	Implement(ctx context.Context, userID, id uuid.UUID) error
}

type recommendationService struct {
	repo    repository.RecommendationRepository
	recipes repository.RecipeRepository
}

func NewRecommendationService(
	repo repository.RecommendationRepository,
	recipes repository.RecipeRepository,
) RecommendationService {
	return &recommendationService{repo: repo, recipes: recipes}
}

// AnalyzeUser sweeps every active recipe and creates advisory rows for the
// problems it finds. Existing open recommendations of the same type are not
// duplicated. Returns how many rows were created.
func (s *recommendationService) AnalyzeUser(ctx context.Context, userID uuid.UUID) (int, error) {
	recipes, err := s.recipes.ListAllWithIngredients(ctx, userID)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range recipes {
		rec := &recipes[i]
		for _, finding := range analyzeRecipe(rec) {
			exists, err := s.repo.ExistsOpen(ctx, userID, rec.ID, finding.RecommendationType)
			if err != nil {
				log.Warn().Err(err).Str("recipe_id", rec.ID.String()).Msg("recommendation: dedup check failed")
				continue
			}
			if exists {
				continue
			}
			finding.UserID = userID
			finding.RecipeID = rec.ID
			if err := s.repo.Create(ctx, &finding); err != nil {
				log.Warn().Err(err).Str("recipe_id", rec.ID.String()).Msg("recommendation: create failed")
				continue
			}
			created++
		}
	}
	return created, nil
}

// analyzeRecipe applies the three advisory rules to one recipe.
func analyzeRecipe(rec *model.Recipe) []model.CostRecommendation {
	var findings []model.CostRecommendation

	// Selling below cost is its own problem, reported before the generic
	// low-margin rule.
	if rec.SellingPrice.IsPositive() && rec.SellingPrice.LessThanOrEqual(rec.CostPerUnit) {
		findings = append(findings, model.CostRecommendation{
			RecommendationType: model.RecommendationStalePrice,
			Description: fmt.Sprintf(
				"%q dijual Rp %s per pcs padahal HPP-nya Rp %s. Naikkan harga jual atau tekan biaya bahan.",
				rec.Name, rec.SellingPrice.StringFixed(0), rec.CostPerUnit.StringFixed(0)),
			PotentialSavings: rec.CostPerUnit.Sub(rec.SellingPrice),
			Priority:         "high",
		})
	} else if rec.SellingPrice.IsPositive() && rec.MarginPct.LessThan(lowMarginThreshold) {
		priority := "medium"
		if rec.MarginPct.LessThan(decimal.NewFromInt(10)) {
			priority = "high"
		}
		// Savings needed to reach the target margin at the current price.
		targetCost := rec.SellingPrice.Mul(decimal.NewFromInt(100).Sub(lowMarginThreshold)).Div(decimal.NewFromInt(100))
		findings = append(findings, model.CostRecommendation{
			RecommendationType: model.RecommendationLowMargin,
			Description: fmt.Sprintf(
				"Margin %q hanya %s%%. Turunkan HPP ke Rp %s per pcs untuk mencapai margin %s%%.",
				rec.Name, rec.MarginPct.StringFixed(1), targetCost.StringFixed(0), lowMarginThreshold.StringFixed(0)),
			PotentialSavings: rec.CostPerUnit.Sub(targetCost),
			Priority:         priority,
		})
	}

	// An ingredient whose blended cost ran well past its reference price
	// signals a supply-side spike.
	for _, ri := range rec.Ingredients {
		ing := ri.Ingredient
		if ing == nil || !ing.PricePerUnit.IsPositive() {
			continue
		}
		if ing.WeightedAverageCost.GreaterThan(ing.PricePerUnit.Mul(costSpikeFactor)) {
			findings = append(findings, model.CostRecommendation{
				RecommendationType: model.RecommendationCostSpike,
				Description: fmt.Sprintf(
					"Biaya rata-rata %q (Rp %s) jauh di atas harga acuan Rp %s. Cari pemasok lain untuk resep %q.",
					ing.Name, ing.WeightedAverageCost.StringFixed(0), ing.PricePerUnit.StringFixed(0), rec.Name),
				PotentialSavings: ing.WeightedAverageCost.Sub(ing.PricePerUnit),
				Priority:         "medium",
			})
			break // one spike finding per recipe is enough
		}
	}

	return findings
}

func (s *recommendationService) List(ctx context.Context, userID uuid.UUID, includeImplemented bool) ([]dto.RecommendationResponse, error) {
	recs, err := s.repo.List(ctx, userID, includeImplemented)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecommendationResponse, 0, len(recs))
	for i := range recs {
		r := &recs[i]
		resp := dto.RecommendationResponse{
			ID:                 r.ID.String(),
			RecipeID:           r.RecipeID.String(),
			RecommendationType: r.RecommendationType,
			Description:        r.Description,
			PotentialSavings:   r.PotentialSavings,
			Priority:           r.Priority,
			IsImplemented:      r.IsImplemented,
		}
		if r.Recipe != nil {
			resp.RecipeName = r.Recipe.Name
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *recommendationService) Implement(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.MarkImplemented(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
