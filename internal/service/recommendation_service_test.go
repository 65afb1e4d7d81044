package service

import (
	"context"
	"testing"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRecipe_StaleSellingPrice(t *testing.T) {
	rec := &model.Recipe{
		Name: "Donat", SellingPrice: dec("2000"), CostPerUnit: dec("2500"),
		MarginPct: dec("-25"),
	}

	findings := analyzeRecipe(rec)
	require.Len(t, findings, 1)
	assert.Equal(t, model.RecommendationStalePrice, findings[0].RecommendationType)
	assert.Equal(t, "high", findings[0].Priority)
	assert.True(t, findings[0].PotentialSavings.Equal(dec("500")))
}

func TestAnalyzeRecipe_LowMargin(t *testing.T) {
	// Margin 20% → medium priority.
	rec := &model.Recipe{
		Name: "Brownies", SellingPrice: dec("10000"), CostPerUnit: dec("8000"),
		MarginPct: dec("20"),
	}
	findings := analyzeRecipe(rec)
	require.Len(t, findings, 1)
	assert.Equal(t, model.RecommendationLowMargin, findings[0].RecommendationType)
	assert.Equal(t, "medium", findings[0].Priority)
	// Target cost at 30% margin: 10000 × 0.7 = 7000 → savings 1000.
	assert.True(t, findings[0].PotentialSavings.Equal(dec("1000")))

	// Margin under 10% → high priority.
	rec.CostPerUnit = dec("9500")
	rec.MarginPct = dec("5")
	findings = analyzeRecipe(rec)
	require.Len(t, findings, 1)
	assert.Equal(t, "high", findings[0].Priority)
}

func TestAnalyzeRecipe_HealthyMarginIsQuiet(t *testing.T) {
	rec := &model.Recipe{
		Name: "Bolu", SellingPrice: dec("15000"), CostPerUnit: dec("5000"),
		MarginPct: dec("66.7"),
	}
	assert.Empty(t, analyzeRecipe(rec))
}

func TestAnalyzeRecipe_CostSpike(t *testing.T) {
	spiked := &model.Ingredient{
		Name: "Mentega", PricePerUnit: dec("45"), WeightedAverageCost: dec("60"),
	}
	normal := &model.Ingredient{
		Name: "Tepung Terigu", PricePerUnit: dec("12"), WeightedAverageCost: dec("13"),
	}
	rec := &model.Recipe{
		Name: "Nastar", SellingPrice: dec("50000"), CostPerUnit: dec("20000"),
		MarginPct: dec("60"),
		Ingredients: []model.RecipeIngredient{
			{Ingredient: normal},
			{Ingredient: spiked},
			{Ingredient: spiked}, // second spike must not double-report
		},
	}

	findings := analyzeRecipe(rec)
	require.Len(t, findings, 1, "one spike finding per recipe")
	assert.Equal(t, model.RecommendationCostSpike, findings[0].RecommendationType)
	assert.True(t, findings[0].PotentialSavings.Equal(dec("15")))
}

func TestAnalyzeRecipe_SpikeNeedsReferencePrice(t *testing.T) {
	rec := &model.Recipe{
		Name: "Sus", SellingPrice: dec("10000"), CostPerUnit: dec("3000"), MarginPct: dec("70"),
		Ingredients: []model.RecipeIngredient{
			{Ingredient: &model.Ingredient{Name: "X", WeightedAverageCost: dec("99")}}, // no reference price
			{Ingredient: nil}, // dangling join
		},
	}
	assert.Empty(t, analyzeRecipe(rec))
}

func TestAnalyzeUser_DeduplicatesOpenFindings(t *testing.T) {
	userID := uuid.New()
	recipes := newStubRecipeRepo()
	recipes.add(model.Recipe{
		UserID: userID, Name: "Donat", Active: true,
		SellingPrice: dec("2000"), CostPerUnit: dec("2500"), MarginPct: dec("-25"),
	})
	repo := newStubRecommendationRepo()
	svc := NewRecommendationService(repo, recipes)

	created, err := svc.AnalyzeUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Second sweep finds the same problem but the open row already exists.
	created, err = svc.AnalyzeUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, repo.created, 1)
}
