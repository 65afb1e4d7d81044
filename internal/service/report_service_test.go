package service

import (
	"context"
	"testing"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/cache"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/config"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodKey(t *testing.T) {
	monday := time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)   // Monday
	sunday := time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)    // Sunday
	saturday := time.Date(2026, 8, 8, 23, 0, 0, 0, time.UTC) // Saturday

	assert.Equal(t, "2026-08-03", periodKey(monday, "daily"))
	assert.Equal(t, "2026-08-03", periodKey(monday, ""))

	// Weeks start on Sunday: a Sunday maps to itself, the following Saturday
	// maps back to it.
	assert.Equal(t, "2026-08-02", periodKey(monday, "weekly"))
	assert.Equal(t, "2026-08-09", periodKey(sunday, "weekly"))
	assert.Equal(t, "2026-08-02", periodKey(saturday, "weekly"))

	assert.Equal(t, "2026-08", periodKey(monday, "monthly"))
	assert.Equal(t, "2026", periodKey(monday, "yearly"))
}

type reportFixture struct {
	svc     ReportService
	orders  *stubOrderRepo
	records *stubFinanceRepo
	userID  uuid.UUID
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		orders:  newStubOrderRepo(),
		records: newStubFinanceRepo(),
		userID:  uuid.New(),
	}
	cfg := &config.Config{ReportCacheTTLMinutes: 15}
	f.svc = NewReportService(f.orders, f.records, cache.NoopReportCache{}, cfg)
	return f
}

// seedDelivered installs two delivered orders of the same product:
// 10 pcs on Mon 2026-08-03 and 5 pcs on Sun 2026-08-09, at Rp 2000 a piece.
// The recipe batch costs 12500 for 10 pcs (cost per unit 1250):
// 500 g flour @ 15 plus 2 eggs @ 2500.
func (f *reportFixture) seedDelivered() {
	flour := &model.Ingredient{Name: "Tepung Terigu", Unit: "gram", WeightedAverageCost: dec("15")}
	eggs := &model.Ingredient{Name: "Telur", Unit: "pcs", WeightedAverageCost: dec("2500")}
	recipe := &model.Recipe{
		ID: uuid.New(), Name: "Bolu Mentega", YieldPcs: 10, CostPerUnit: dec("1250"),
		Ingredients: []model.RecipeIngredient{
			{IngredientID: uuid.New(), Quantity: dec("500"), Unit: "gram", Ingredient: flour},
			{IngredientID: uuid.New(), Quantity: dec("2"), Unit: "pcs", Ingredient: eggs},
		},
	}

	mkOrder := func(day time.Time, qty int) model.Order {
		total := dec("2000").Mul(decimal.NewFromInt(int64(qty)))
		return model.Order{
			UserID: f.userID, Status: model.OrderDelivered, DeliveryDate: day,
			TotalAmount: total,
			Items: []model.OrderItem{
				{RecipeID: recipe.ID, Quantity: qty, UnitPrice: dec("2000"),
					TotalPrice: total, Recipe: recipe},
			},
		}
	}
	f.orders.delivered = []model.Order{
		mkOrder(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), 10),
		mkOrder(time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC), 5),
	}
}

func TestProfitReport_Totals(t *testing.T) {
	f := newReportFixture()
	f.seedDelivered()
	f.records.expenses = []model.FinancialRecord{
		{UserID: f.userID, Type: model.RecordExpense, Amount: dec("3000"),
			Date: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
		// Outside the window, must not count.
		{UserID: f.userID, Type: model.RecordExpense, Amount: dec("99999"),
			Date: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)},
	}

	report, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "2026-08-01", EndDate: "2026-08-31", Period: "daily",
	})
	require.NoError(t, err)

	assert.True(t, report.TotalRevenue.Equal(dec("30000")))
	assert.True(t, report.TotalCOGS.Equal(dec("18750")))
	assert.True(t, report.GrossProfit.Equal(dec("11250")))
	assert.True(t, report.GrossMarginPct.Equal(dec("37.5")), "got %s", report.GrossMarginPct)
	assert.True(t, report.TotalExpenses.Equal(dec("3000")))
	assert.True(t, report.NetProfit.Equal(dec("8250")))
	assert.True(t, report.NetMarginPct.Equal(dec("27.5")), "got %s", report.NetMarginPct)

	// gross = revenue − COGS, net = gross − expenses
	assert.True(t, report.GrossProfit.Equal(report.TotalRevenue.Sub(report.TotalCOGS)))
	assert.True(t, report.NetProfit.Equal(report.GrossProfit.Sub(report.TotalExpenses)))
}

func TestProfitReport_DailyAndWeeklyBuckets(t *testing.T) {
	f := newReportFixture()
	f.seedDelivered()

	daily, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "2026-08-01", EndDate: "2026-08-31", Period: "daily",
	})
	require.NoError(t, err)
	require.Len(t, daily.Buckets, 2)
	assert.Equal(t, "2026-08-03", daily.Buckets[0].Period)
	assert.Equal(t, "2026-08-09", daily.Buckets[1].Period)
	assert.True(t, daily.Buckets[0].Revenue.Equal(dec("20000")))
	assert.True(t, daily.Buckets[0].GrossProfit.Equal(dec("7500")))
	assert.Equal(t, 1, daily.Buckets[0].OrderCount)

	weekly, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "2026-08-01", EndDate: "2026-08-31", Period: "weekly",
	})
	require.NoError(t, err)
	require.Len(t, weekly.Buckets, 2)
	assert.Equal(t, "2026-08-02", weekly.Buckets[0].Period, "Monday order lands in the Sunday-started week")
	assert.Equal(t, "2026-08-09", weekly.Buckets[1].Period)

	monthly, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "2026-08-01", EndDate: "2026-08-31", Period: "monthly",
	})
	require.NoError(t, err)
	require.Len(t, monthly.Buckets, 1)
	assert.Equal(t, "2026-08", monthly.Buckets[0].Period)
	assert.Equal(t, 2, monthly.Buckets[0].OrderCount)
	assert.True(t, monthly.Buckets[0].Revenue.Equal(dec("30000")))
}

func TestProfitReport_IngredientBreakdownSumsToHundred(t *testing.T) {
	f := newReportFixture()
	f.seedDelivered()

	report, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "2026-08-01", EndDate: "2026-08-31", Period: "daily",
	})
	require.NoError(t, err)

	require.Len(t, report.IngredientBreakdown, 2)
	// Flour: 500×15 × (10/10 + 5/10) = 11250; eggs: 2×2500 × 1.5 = 7500.
	assert.Equal(t, "Tepung Terigu", report.IngredientBreakdown[0].Name)
	assert.True(t, report.IngredientBreakdown[0].Amount.Equal(dec("11250")))
	assert.True(t, report.IngredientBreakdown[0].Percentage.Equal(dec("60")))
	assert.Equal(t, "Telur", report.IngredientBreakdown[1].Name)
	assert.True(t, report.IngredientBreakdown[1].Percentage.Equal(dec("40")))

	pctSum := decimal.Zero
	for _, share := range report.IngredientBreakdown {
		pctSum = pctSum.Add(share.Percentage)
	}
	assert.True(t, pctSum.Equal(dec("100")))
}

func TestProfitReport_RebuildsCostsFromCurrentWACs(t *testing.T) {
	f := newReportFixture()
	f.seedDelivered()
	// The persisted per-unit cost lags the latest purchases; the report must
	// recompute from the ingredient WACs instead of trusting it.
	f.orders.delivered[0].Items[0].Recipe.CostPerUnit = dec("999")

	report, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "2026-08-01", EndDate: "2026-08-31", Period: "daily",
	})
	require.NoError(t, err)

	assert.True(t, report.TotalCOGS.Equal(dec("18750")), "got %s", report.TotalCOGS)
	assert.True(t, report.GrossProfit.Equal(dec("11250")))
	require.Len(t, report.Products, 1)
	assert.True(t, report.Products[0].COGS.Equal(dec("18750")))
}

func TestProfitReport_ProductsRankedByProfit(t *testing.T) {
	f := newReportFixture()
	f.seedDelivered()

	report, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "2026-08-01", EndDate: "2026-08-31", Period: "daily",
	})
	require.NoError(t, err)

	require.Len(t, report.Products, 1)
	p := report.Products[0]
	assert.Equal(t, "Bolu Mentega", p.Name)
	assert.Equal(t, 15, p.Quantity)
	assert.True(t, p.GrossProfit.Equal(dec("11250")))
	assert.True(t, p.MarginPct.Equal(dec("37.5")))
	assert.Len(t, report.TopProducts, 1)
	assert.Len(t, report.BottomProducts, 1)
}

func TestProfitReport_EmptyWindowIsAllZeros(t *testing.T) {
	f := newReportFixture()

	report, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "2026-01-01", EndDate: "2026-01-31", Period: "daily",
	})
	require.NoError(t, err)

	assert.True(t, report.TotalRevenue.IsZero())
	assert.True(t, report.GrossMarginPct.IsZero(), "zero revenue must not divide")
	assert.True(t, report.NetMarginPct.IsZero())
	assert.Empty(t, report.Buckets)
	assert.Empty(t, report.IngredientBreakdown)
}

func TestProfitReport_RejectsMalformedDates(t *testing.T) {
	f := newReportFixture()
	_, err := f.svc.Profit(context.Background(), f.userID, dto.ReportQuery{
		StartDate: "01-08-2026", EndDate: "2026-08-31",
	})
	assert.Error(t, err)
}
