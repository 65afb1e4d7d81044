package service

// In-memory repository stubs shared by the service tests. Each stores copies
// keyed by id and returns gorm.ErrRecordNotFound like the real thing.

import (
	"context"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── IngredientRepository ─────────────────────────────────────────────────────

type stubIngredientRepo struct {
	ingredients map[uuid.UUID]*model.Ingredient
	// deltaMisses makes the next N ApplyStockDelta calls report zero rows,
	// simulating a lost optimistic race.
	deltaMisses int
	deltaCalls  int
}

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{ingredients: map[uuid.UUID]*model.Ingredient{}}
}

func (r *stubIngredientRepo) add(ing model.Ingredient) *model.Ingredient {
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	r.ingredients[ing.ID] = &ing
	return &ing
}

func (r *stubIngredientRepo) Create(_ context.Context, ing *model.Ingredient) error {
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	cloned := *ing
	r.ingredients[ing.ID] = &cloned
	return nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok || ing.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *ing
	return &cloned, nil
}

func (r *stubIngredientRepo) List(_ context.Context, userID uuid.UUID, _ dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	out, _ := r.all(userID)
	return out, int64(len(out)), nil
}

func (r *stubIngredientRepo) ListAll(_ context.Context, userID uuid.UUID) ([]model.Ingredient, error) {
	out, _ := r.all(userID)
	return out, nil
}

func (r *stubIngredientRepo) all(userID uuid.UUID) ([]model.Ingredient, error) {
	var out []model.Ingredient
	for _, ing := range r.ingredients {
		if ing.UserID == userID && ing.Active {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) Update(_ context.Context, ing *model.Ingredient) error {
	cloned := *ing
	r.ingredients[ing.ID] = &cloned
	return nil
}

func (r *stubIngredientRepo) SoftDelete(_ context.Context, userID, id uuid.UUID) error {
	ing, ok := r.ingredients[id]
	if !ok || ing.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	ing.Active = false
	return nil
}

func (r *stubIngredientRepo) ApplyStockDelta(_ context.Context, userID, id uuid.UUID, delta, expectedWAC, newWAC decimal.Decimal) (int64, error) {
	r.deltaCalls++
	if r.deltaMisses > 0 {
		r.deltaMisses--
		return 0, nil
	}
	ing, ok := r.ingredients[id]
	if !ok || ing.UserID != userID || !ing.WeightedAverageCost.Equal(expectedWAC) {
		return 0, nil
	}
	ing.CurrentStock = ing.CurrentStock.Add(delta)
	ing.WeightedAverageCost = newWAC
	return 1, nil
}

func (r *stubIngredientRepo) AddStock(_ context.Context, userID, id uuid.UUID, delta decimal.Decimal) error {
	ing, ok := r.ingredients[id]
	if !ok || ing.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	ing.CurrentStock = ing.CurrentStock.Add(delta)
	return nil
}

var _ repository.IngredientRepository = (*stubIngredientRepo)(nil)

// ── StockMovementRepository ──────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, userID uuid.UUID, _ repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── UserRepository ───────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{users: map[uuid.UUID]*model.User{}} }

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	r.users[u.ID] = &cloned
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Active {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	cloned := *u
	r.users[u.ID] = &cloned
	return nil
}

func (r *stubUserRepo) ListActiveIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, u := range r.users {
		if u.Active {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── PurchaseRepository ───────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.IngredientPurchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: map[uuid.UUID]*model.IngredientPurchase{}}
}

func (r *stubPurchaseRepo) Create(_ context.Context, p *model.IngredientPurchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cloned := *p
	r.purchases[p.ID] = &cloned
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.IngredientPurchase, error) {
	p, ok := r.purchases[id]
	if !ok || p.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, userID uuid.UUID, filter dto.PurchaseFilter) ([]model.IngredientPurchase, int64, error) {
	var out []model.IngredientPurchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) Update(_ context.Context, p *model.IngredientPurchase) error {
	cloned := *p
	r.purchases[p.ID] = &cloned
	return nil
}

func (r *stubPurchaseRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	p, ok := r.purchases[id]
	if !ok || p.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.purchases, id)
	return nil
}

func (r *stubPurchaseRepo) SetExpenseID(_ context.Context, id uuid.UUID, expenseID *uuid.UUID) error {
	if p, ok := r.purchases[id]; ok {
		p.ExpenseID = expenseID
	}
	return nil
}

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── OrderRepository ──────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders    map[uuid.UUID]*model.Order
	delivered []model.Order // fixture for ListDeliveredInRange
}

func newStubOrderRepo() *stubOrderRepo { return &stubOrderRepo{orders: map[uuid.UUID]*model.Order{}} }

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cloned := *o
	r.orders[o.ID] = &cloned
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *o
	return &cloned, nil
}

func (r *stubOrderRepo) List(_ context.Context, userID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ListDeliveredInRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.delivered {
		if o.UserID == userID && !o.DeliveryDate.Before(start) && !o.DeliveryDate.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, userID, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.Order) error {
	cloned := *o
	r.orders[o.ID] = &cloned
	return nil
}

func (r *stubOrderRepo) CountForDay(_ context.Context, userID uuid.UUID, _ time.Time) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.UserID == userID {
			n++
		}
	}
	return n, nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── RecipeRepository ─────────────────────────────────────────────────────────

type stubRecipeRepo struct {
	recipes map[uuid.UUID]*model.Recipe
	// UpdateCost writes captured for assertions.
	costUpdates map[uuid.UUID][2]decimal.Decimal
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{
		recipes:     map[uuid.UUID]*model.Recipe{},
		costUpdates: map[uuid.UUID][2]decimal.Decimal{},
	}
}

func (r *stubRecipeRepo) add(rec model.Recipe) *model.Recipe {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recipes[rec.ID] = &rec
	return &rec
}

func (r *stubRecipeRepo) Create(_ context.Context, rec *model.Recipe) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cloned := *rec
	r.recipes[rec.ID] = &cloned
	return nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok || rec.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *rec
	return &cloned, nil
}

func (r *stubRecipeRepo) List(_ context.Context, userID uuid.UUID, _ dto.RecipeFilter) ([]model.Recipe, int64, error) {
	out, _ := r.ListAllWithIngredients(context.Background(), userID)
	return out, int64(len(out)), nil
}

func (r *stubRecipeRepo) ListAllWithIngredients(_ context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var out []model.Recipe
	for _, rec := range r.recipes {
		if rec.UserID == userID && rec.Active {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) FindByIngredientID(_ context.Context, userID, ingredientID uuid.UUID) ([]model.Recipe, error) {
	var out []model.Recipe
	for _, rec := range r.recipes {
		if rec.UserID != userID {
			continue
		}
		for _, ri := range rec.Ingredients {
			if ri.IngredientID == ingredientID {
				out = append(out, *rec)
				break
			}
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) Update(_ context.Context, rec *model.Recipe) error {
	cloned := *rec
	r.recipes[rec.ID] = &cloned
	return nil
}

func (r *stubRecipeRepo) UpdateCost(_ context.Context, id uuid.UUID, costPerUnit, marginPct decimal.Decimal) error {
	r.costUpdates[id] = [2]decimal.Decimal{costPerUnit, marginPct}
	if rec, ok := r.recipes[id]; ok {
		rec.CostPerUnit = costPerUnit
		rec.MarginPct = marginPct
	}
	return nil
}

func (r *stubRecipeRepo) ReplaceIngredients(_ context.Context, recipeID uuid.UUID, items []model.RecipeIngredient) error {
	if rec, ok := r.recipes[recipeID]; ok {
		rec.Ingredients = items
	}
	return nil
}

func (r *stubRecipeRepo) SoftDelete(_ context.Context, userID, id uuid.UUID) error {
	rec, ok := r.recipes[id]
	if !ok || rec.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	rec.Active = false
	return nil
}

var _ repository.RecipeRepository = (*stubRecipeRepo)(nil)

// ── FinanceRepository ────────────────────────────────────────────────────────

type stubFinanceRepo struct {
	records  map[uuid.UUID]*model.FinancialRecord
	expenses []model.FinancialRecord // fixture for ListExpensesInRange
}

func newStubFinanceRepo() *stubFinanceRepo {
	return &stubFinanceRepo{records: map[uuid.UUID]*model.FinancialRecord{}}
}

func (r *stubFinanceRepo) Create(_ context.Context, rec *model.FinancialRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cloned := *rec
	r.records[rec.ID] = &cloned
	return nil
}

func (r *stubFinanceRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.FinancialRecord, error) {
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *rec
	return &cloned, nil
}

func (r *stubFinanceRepo) FindByTransactionID(_ context.Context, userID, transactionID uuid.UUID) (*model.FinancialRecord, error) {
	for _, rec := range r.records {
		if rec.UserID == userID && rec.TransactionID != nil && *rec.TransactionID == transactionID {
			cloned := *rec
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFinanceRepo) List(_ context.Context, userID uuid.UUID, _ dto.FinanceFilter) ([]model.FinancialRecord, int64, error) {
	var out []model.FinancialRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubFinanceRepo) ListExpensesInRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]model.FinancialRecord, error) {
	var out []model.FinancialRecord
	for _, rec := range r.expenses {
		if rec.UserID == userID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubFinanceRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}

var _ repository.FinanceRepository = (*stubFinanceRepo)(nil)

// ── SupplierRepository ───────────────────────────────────────────────────────

type supplierCall struct {
	name       string
	amount     decimal.Decimal
	countDelta int
}

type stubSupplierRepo struct {
	calls []supplierCall
}

func (r *stubSupplierRepo) List(_ context.Context, _ uuid.UUID) ([]model.Supplier, error) {
	return nil, nil
}

func (r *stubSupplierRepo) RecordPurchase(_ context.Context, _ uuid.UUID, name string, amount decimal.Decimal, countDelta int, _ time.Time) error {
	r.calls = append(r.calls, supplierCall{name: name, amount: amount, countDelta: countDelta})
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── RecommendationRepository ─────────────────────────────────────────────────

type stubRecommendationRepo struct {
	created []model.CostRecommendation
	open    map[string]bool // recipeID+type
}

func newStubRecommendationRepo() *stubRecommendationRepo {
	return &stubRecommendationRepo{open: map[string]bool{}}
}

func (r *stubRecommendationRepo) Create(_ context.Context, rec *model.CostRecommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.created = append(r.created, *rec)
	r.open[rec.RecipeID.String()+rec.RecommendationType] = true
	return nil
}

func (r *stubRecommendationRepo) List(_ context.Context, _ uuid.UUID, _ bool) ([]model.CostRecommendation, error) {
	return r.created, nil
}

func (r *stubRecommendationRepo) ExistsOpen(_ context.Context, _, recipeID uuid.UUID, recType string) (bool, error) {
	return r.open[recipeID.String()+recType], nil
}

func (r *stubRecommendationRepo) MarkImplemented(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (r *stubRecommendationRepo) DeleteForRecipe(_ context.Context, _ uuid.UUID) error {
	return nil
}

var _ repository.RecommendationRepository = (*stubRecommendationRepo)(nil)

// ── Sync-service fakes for the pipeline tests ────────────────────────────────

type fakeInventorySync struct {
	applyErr   error
	reverseErr error
	deductErr  error

	applied  []decimal.Decimal // quantities passed to ApplyPurchase
	reversed []decimal.Decimal
	deducted []decimal.Decimal
}

func (f *fakeInventorySync) ApplyPurchase(_ context.Context, _, _ uuid.UUID, qty, _ decimal.Decimal, _ uuid.UUID) error {
	f.applied = append(f.applied, qty)
	return f.applyErr
}

func (f *fakeInventorySync) ReversePurchase(_ context.Context, _, _ uuid.UUID, qty decimal.Decimal, _ uuid.UUID) error {
	f.reversed = append(f.reversed, qty)
	return f.reverseErr
}

func (f *fakeInventorySync) DeductUsage(_ context.Context, _, _ uuid.UUID, qty decimal.Decimal, _ string, _ uuid.UUID) error {
	f.deducted = append(f.deducted, qty)
	return f.deductErr
}

var _ InventorySyncService = (*fakeInventorySync)(nil)

type fakeFinanceSync struct {
	expenseErr error
	incomeErr  error

	expenseCalls int
	deleteCalls  int
	incomeCalls  int
}

func (f *fakeFinanceSync) CreateExpenseFromPurchase(_ context.Context, _ *model.IngredientPurchase, _ string) (*uuid.UUID, error) {
	f.expenseCalls++
	if f.expenseErr != nil {
		return nil, f.expenseErr
	}
	id := uuid.New()
	return &id, nil
}

func (f *fakeFinanceSync) DeleteExpenseForPurchase(_ context.Context, _ *model.IngredientPurchase) error {
	f.deleteCalls++
	return nil
}

func (f *fakeFinanceSync) CreateIncomeFromOrder(_ context.Context, _ *model.Order) error {
	f.incomeCalls++
	return f.incomeErr
}

var _ FinanceSyncService = (*fakeFinanceSync)(nil)

type fakeHPP struct {
	err   error
	calls int
}

func (f *fakeHPP) RecalculateRecipe(_ context.Context, _, _ uuid.UUID) error {
	f.calls++
	return f.err
}

func (f *fakeHPP) OnIngredientCostChange(_ context.Context, _, _ uuid.UUID) error {
	f.calls++
	return f.err
}

var _ HPPService = (*fakeHPP)(nil)
