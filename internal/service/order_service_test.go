package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/cache"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionAllowed(t *testing.T) {
	allowed := []struct{ from, to string }{
		{model.OrderPending, model.OrderConfirmed},
		{model.OrderPending, model.OrderCancelled},
		{model.OrderConfirmed, model.OrderInProgress},
		{model.OrderInProgress, model.OrderReady},
		{model.OrderReady, model.OrderDelivered},
		{model.OrderReady, model.OrderCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, transitionAllowed(tc.from, tc.to), "%s → %s", tc.from, tc.to)
	}

	forbidden := []struct{ from, to string }{
		{model.OrderPending, model.OrderDelivered}, // no skipping ahead
		{model.OrderPending, model.OrderReady},
		{model.OrderConfirmed, model.OrderPending}, // no going back
		{model.OrderReady, model.OrderInProgress},
		{model.OrderDelivered, model.OrderCancelled}, // final
		{model.OrderCancelled, model.OrderPending},   // final
	}
	for _, tc := range forbidden {
		assert.False(t, transitionAllowed(tc.from, tc.to), "%s → %s", tc.from, tc.to)
	}
}

type orderFixture struct {
	svc       OrderService
	orders    *stubOrderRepo
	recipes   *stubRecipeRepo
	inventory *fakeInventorySync
	finance   *fakeFinanceSync
	userID    uuid.UUID
	recipe    *model.Recipe
	flourID   uuid.UUID
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    newStubOrderRepo(),
		recipes:   newStubRecipeRepo(),
		inventory: &fakeInventorySync{},
		finance:   &fakeFinanceSync{},
		userID:    uuid.New(),
		flourID:   uuid.New(),
	}
	f.recipe = f.recipes.add(model.Recipe{
		UserID:       f.userID,
		Name:         "Bolu Mentega",
		YieldPcs:     10,
		SellingPrice: dec("15000"),
		Active:       true,
		Ingredients: []model.RecipeIngredient{
			{IngredientID: f.flourID, Quantity: dec("500"), Unit: "gram"},
		},
	})
	f.svc = NewOrderService(f.orders, f.recipes, f.inventory, f.finance, cache.NoopReportCache{})
	return f
}

func (f *orderFixture) addOrder(status string, qty int) *model.Order {
	o := &model.Order{
		UserID:       f.userID,
		OrderNo:      "ORD-20260801-001",
		CustomerName: "Bu Sari",
		Status:       status,
		DeliveryDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:  dec("15000").Mul(dec(itoa(qty))),
		Items: []model.OrderItem{
			{RecipeID: f.recipe.ID, Quantity: qty, UnitPrice: dec("15000"),
				TotalPrice: dec("15000").Mul(dec(itoa(qty)))},
		},
	}
	_ = f.orders.Create(context.Background(), o)
	return o
}

func itoa(n int) string { return strconv.Itoa(n) }

func TestOrderCreate_PricesAtCurrentSellingPrice(t *testing.T) {
	f := newOrderFixture()

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateOrderRequest{
		CustomerName: "Bu Sari",
		DeliveryDate: "2026-08-05",
		Items: []dto.OrderItemInput{
			{RecipeID: f.recipe.ID.String(), Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, resp.Status)
	assert.True(t, resp.TotalAmount.Equal(dec("45000")))
	assert.Regexp(t, `^ORD-\d{8}-001$`, resp.OrderNo)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec("15000")))
}

func TestOrderCreate_UnknownRecipe(t *testing.T) {
	f := newOrderFixture()
	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateOrderRequest{
		CustomerName: "Bu Sari",
		DeliveryDate: "2026-08-05",
		Items:        []dto.OrderItemInput{{RecipeID: uuid.New().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderUpdateStatus_RejectsInvalidTransition(t *testing.T) {
	f := newOrderFixture()
	o := f.addOrder(model.OrderPending, 1)

	_, err := f.svc.UpdateStatus(context.Background(), f.userID, o.ID, model.OrderDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, f.inventory.deducted, "a rejected transition must have no side effects")
}

func TestOrderUpdateStatus_FinalStatesAreImmutable(t *testing.T) {
	f := newOrderFixture()
	delivered := f.addOrder(model.OrderDelivered, 1)
	cancelled := f.addOrder(model.OrderCancelled, 1)

	_, err := f.svc.UpdateStatus(context.Background(), f.userID, delivered.ID, model.OrderCancelled)
	assert.ErrorIs(t, err, ErrOrderFinal)
	_, err = f.svc.UpdateStatus(context.Background(), f.userID, cancelled.ID, model.OrderPending)
	assert.ErrorIs(t, err, ErrOrderFinal)
}

func TestOrderUpdateStatus_DeliveryDeductsScaledUsage(t *testing.T) {
	f := newOrderFixture()
	// 5 pcs sold from a batch of 10 → half the recipe quantities.
	o := f.addOrder(model.OrderReady, 5)

	resp, err := f.svc.UpdateStatus(context.Background(), f.userID, o.ID, model.OrderDelivered)
	require.NoError(t, err)

	assert.Equal(t, model.OrderDelivered, resp.Status)
	assert.Empty(t, resp.SyncWarnings)

	require.Len(t, f.inventory.deducted, 1)
	assert.True(t, f.inventory.deducted[0].Equal(dec("250")),
		"500 g per batch × 5/10 sold, got %s", f.inventory.deducted[0])
	assert.Equal(t, 1, f.finance.incomeCalls)
}

func TestOrderUpdateStatus_DeliveryPipelineFailureIsAWarning(t *testing.T) {
	f := newOrderFixture()
	o := f.addOrder(model.OrderReady, 2)
	f.inventory.deductErr = errors.New("stock gone")

	resp, err := f.svc.UpdateStatus(context.Background(), f.userID, o.ID, model.OrderDelivered)
	require.NoError(t, err, "the status change has already committed")

	require.NotEmpty(t, resp.SyncWarnings)
	assert.Contains(t, resp.SyncWarnings[0], "stock_usage:")
	assert.Equal(t, 1, f.finance.incomeCalls, "income sync still runs after a stock failure")

	stored, _ := f.orders.FindByID(context.Background(), f.userID, o.ID)
	assert.Equal(t, model.OrderDelivered, stored.Status)
}

func TestOrderUpdateStatus_NonDeliveryHasNoSideEffects(t *testing.T) {
	f := newOrderFixture()
	o := f.addOrder(model.OrderPending, 1)

	resp, err := f.svc.UpdateStatus(context.Background(), f.userID, o.ID, model.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, resp.Status)
	assert.Empty(t, f.inventory.deducted)
	assert.Zero(t, f.finance.incomeCalls)
}
