package service

import (
	"context"
	"testing"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func newInventoryFixture() (*stubIngredientRepo, *stubMovementRepo, InventorySyncService, uuid.UUID, *model.Ingredient) {
	userID := uuid.New()
	ingredients := newStubIngredientRepo()
	ing := ingredients.add(model.Ingredient{
		UserID:              userID,
		Name:                "Tepung Terigu",
		Unit:                "gram",
		CurrentStock:        dec("1000"),
		MinStock:            dec("100"),
		WeightedAverageCost: dec("10"),
		Active:              true,
	})
	movements := &stubMovementRepo{}
	svc := NewInventorySyncService(ingredients, movements, newStubUserRepo(), nil)
	return ingredients, movements, svc, userID, ing
}

func TestInventorySync_ApplyPurchaseBlendsWAC(t *testing.T) {
	ingredients, movements, svc, userID, ing := newInventoryFixture()

	// 1000 @ 10 in stock, buy 1000 @ 14 → stock 2000, WAC 12.
	err := svc.ApplyPurchase(context.Background(), userID, ing.ID, dec("1000"), dec("14"), uuid.New())
	require.NoError(t, err)

	got := ingredients.ingredients[ing.ID]
	assert.True(t, got.CurrentStock.Equal(dec("2000")))
	assert.True(t, got.WeightedAverageCost.Equal(dec("12")), "got %s", got.WeightedAverageCost)

	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.Equal(t, model.MovementPurchase, m.Type)
	assert.True(t, m.Quantity.Equal(dec("1000")))
	assert.True(t, m.StockBefore.Equal(dec("1000")))
	assert.True(t, m.StockAfter.Equal(dec("2000")))
}

func TestInventorySync_ApplyPurchaseRetriesLostRace(t *testing.T) {
	ingredients, _, svc, userID, ing := newInventoryFixture()
	ingredients.deltaMisses = 1

	err := svc.ApplyPurchase(context.Background(), userID, ing.ID, dec("500"), dec("10"), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, ingredients.deltaCalls, "expected one re-read retry after the lost race")
	assert.True(t, ingredients.ingredients[ing.ID].CurrentStock.Equal(dec("1500")))
}

func TestInventorySync_ApplyPurchaseGivesUpAfterTwoMisses(t *testing.T) {
	ingredients, movements, svc, userID, ing := newInventoryFixture()
	ingredients.deltaMisses = 2

	err := svc.ApplyPurchase(context.Background(), userID, ing.ID, dec("500"), dec("10"), uuid.New())
	require.Error(t, err)
	assert.Empty(t, movements.movements)
	assert.True(t, ingredients.ingredients[ing.ID].CurrentStock.Equal(dec("1000")), "stock must be untouched")
}

func TestInventorySync_ApplyPurchaseUnknownIngredient(t *testing.T) {
	_, _, svc, userID, _ := newInventoryFixture()
	err := svc.ApplyPurchase(context.Background(), userID, uuid.New(), dec("1"), dec("1"), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInventorySync_ReversePurchaseLeavesWAC(t *testing.T) {
	ingredients, movements, svc, userID, ing := newInventoryFixture()

	err := svc.ReversePurchase(context.Background(), userID, ing.ID, dec("300"), uuid.New())
	require.NoError(t, err)

	got := ingredients.ingredients[ing.ID]
	assert.True(t, got.CurrentStock.Equal(dec("700")))
	assert.True(t, got.WeightedAverageCost.Equal(dec("10")), "reversal must not touch the WAC")

	require.Len(t, movements.movements, 1)
	assert.Equal(t, model.MovementReversal, movements.movements[0].Type)
	assert.True(t, movements.movements[0].Quantity.Equal(dec("-300")))
}

func TestInventorySync_DeductUsageConvertsUnits(t *testing.T) {
	ingredients, movements, svc, userID, ing := newInventoryFixture()

	// Recipe line in kg, stock tracked in gram.
	err := svc.DeductUsage(context.Background(), userID, ing.ID, dec("0.25"), "kg", uuid.New())
	require.NoError(t, err)

	got := ingredients.ingredients[ing.ID]
	assert.True(t, got.CurrentStock.Equal(dec("750")))

	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.Equal(t, model.MovementUsage, m.Type)
	assert.True(t, m.Quantity.Equal(dec("-250")))
}

func TestInventorySync_DeductUsageMayGoNegative(t *testing.T) {
	ingredients, _, svc, userID, ing := newInventoryFixture()

	err := svc.DeductUsage(context.Background(), userID, ing.ID, dec("1500"), "gram", uuid.New())
	require.NoError(t, err)
	assert.True(t, ingredients.ingredients[ing.ID].CurrentStock.Equal(dec("-500")),
		"usage deduction must not clamp at zero; the shortfall stays visible")
}
