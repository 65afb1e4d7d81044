package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/cache"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/config"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/costing"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/infra"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ReportService interface {
	// Profit builds the profit report for [start, end]. Only DELIVERED
	// orders contribute revenue and COGS.
	Profit(ctx context.Context, userID uuid.UUID, q dto.ReportQuery) (*dto.ProfitReportResponse, error)
	// ExportProfitPDF renders the same report to a PDF file and returns its
	// path.
	ExportProfitPDF(ctx context.Context, userID uuid.UUID, q dto.ReportQuery) (string, error)
}

type reportService struct {
	orders      repository.OrderRepository
	records     repository.FinanceRepository
	reportCache cache.ReportCache
	cfg         *config.Config
}

func NewReportService(
	orders repository.OrderRepository,
	records repository.FinanceRepository,
	reportCache cache.ReportCache,
	cfg *config.Config,
) ReportService {
	return &reportService{orders: orders, records: records, reportCache: reportCache, cfg: cfg}
}

func (s *reportService) Profit(ctx context.Context, userID uuid.UUID, q dto.ReportQuery) (*dto.ProfitReportResponse, error) {
	cacheKey := fmt.Sprintf("report:%s:profit:%s:%s:%s", userID, q.StartDate, q.EndDate, q.Period)
	if raw, hit, err := s.reportCache.Get(ctx, cacheKey); err == nil && hit {
		var cached dto.ProfitReportResponse
		if json.Unmarshal(raw, &cached) == nil {
			return &cached, nil
		}
	}

	report, err := s.compute(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(report); err == nil {
		ttl := time.Duration(s.cfg.ReportCacheTTLMinutes) * time.Minute
		if err := s.reportCache.Set(ctx, cacheKey, payload, ttl); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("report: cache write failed")
		}
	}
	return report, nil
}

func (s *reportService) ExportProfitPDF(ctx context.Context, userID uuid.UUID, q dto.ReportQuery) (string, error) {
	report, err := s.Profit(ctx, userID, q)
	if err != nil {
		return "", err
	}
	return infra.GenerateProfitReportPDF(report, s.cfg.PDFStoragePath)
}

func (s *reportService) compute(ctx context.Context, userID uuid.UUID, q dto.ReportQuery) (*dto.ProfitReportResponse, error) {
	start, err := time.Parse("2006-01-02", q.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", q.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	orders, err := s.orders.ListDeliveredInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	report := &dto.ProfitReportResponse{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Period:    q.Period,
	}

	buckets := map[string]*dto.PeriodBucket{}
	products := map[string]*dto.ProductProfit{}
	ingredientAmounts := map[string]decimal.Decimal{}
	unitCOGS := map[uuid.UUID]decimal.Decimal{}

	totalRevenue := decimal.Zero
	totalCOGS := decimal.Zero

	for i := range orders {
		o := &orders[i]
		key := periodKey(o.DeliveryDate, q.Period)

		b, ok := buckets[key]
		if !ok {
			b = &dto.PeriodBucket{Period: key}
			buckets[key] = b
		}
		b.OrderCount++

		for _, item := range o.Items {
			revenue := item.TotalPrice
			cogs := decimal.Zero
			if item.Recipe != nil {
				// The stored cost_per_unit lags behind purchases; rebuild the
				// per-unit cost from current WACs so the report and the
				// ingredient breakdown agree.
				unit, ok := unitCOGS[item.RecipeID]
				if !ok {
					unit = costing.RecipeCOGS(BatchItems(item.Recipe), item.Recipe.YieldPcs, LookupFromJoins(item.Recipe))
					unitCOGS[item.RecipeID] = unit
				}
				cogs = unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
				accumulateIngredientShares(ingredientAmounts, item.Recipe, item.Quantity)
			}

			totalRevenue = totalRevenue.Add(revenue)
			totalCOGS = totalCOGS.Add(cogs)
			b.Revenue = b.Revenue.Add(revenue)
			b.COGS = b.COGS.Add(cogs)

			pid := item.RecipeID.String()
			p, ok := products[pid]
			if !ok {
				name := ""
				if item.Recipe != nil {
					name = item.Recipe.Name
				}
				p = &dto.ProductProfit{RecipeID: pid, Name: name}
				products[pid] = p
			}
			p.Quantity += item.Quantity
			p.Revenue = p.Revenue.Add(revenue)
			p.COGS = p.COGS.Add(cogs)
		}
	}

	expenses, err := s.records.ListExpensesInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	totalExpenses := decimal.Zero
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
	}

	report.TotalRevenue = totalRevenue
	report.TotalCOGS = totalCOGS
	report.GrossProfit = totalRevenue.Sub(totalCOGS)
	report.GrossMarginPct = costing.MarginPct(totalCOGS, totalRevenue)
	report.TotalExpenses = totalExpenses
	report.NetProfit = report.GrossProfit.Sub(totalExpenses)
	report.NetMarginPct = costing.MarginPct(totalCOGS.Add(totalExpenses), totalRevenue)

	// Buckets in chronological order; the period keys sort lexically.
	for _, b := range buckets {
		b.GrossProfit = b.Revenue.Sub(b.COGS)
		report.Buckets = append(report.Buckets, *b)
	}
	sort.Slice(report.Buckets, func(i, j int) bool {
		return report.Buckets[i].Period < report.Buckets[j].Period
	})

	for _, p := range products {
		p.GrossProfit = p.Revenue.Sub(p.COGS)
		p.MarginPct = costing.MarginPct(p.COGS, p.Revenue)
		report.Products = append(report.Products, *p)
	}
	sort.Slice(report.Products, func(i, j int) bool {
		return report.Products[i].GrossProfit.GreaterThan(report.Products[j].GrossProfit)
	})
	report.TopProducts = headOf(report.Products, 5)
	report.BottomProducts = tailOf(report.Products, 5)

	report.IngredientBreakdown = breakdownFromAmounts(ingredientAmounts, totalCOGS)
	return report, nil
}

// accumulateIngredientShares spreads a sold item's ingredient costs into the
// per-ingredient totals, scaled by pieces sold over batch yield.
func accumulateIngredientShares(acc map[string]decimal.Decimal, rec *model.Recipe, qtySold int) {
	yield := rec.YieldPcs
	if yield < 1 {
		yield = 1
	}
	scale := decimal.NewFromInt(int64(qtySold)).Div(decimal.NewFromInt(int64(yield)))
	for _, ri := range rec.Ingredients {
		if ri.Ingredient == nil {
			continue
		}
		amount := costing.Convert(ri.Quantity, ri.Unit, ri.Ingredient.Unit).
			Mul(ri.Ingredient.WeightedAverageCost).
			Mul(scale)
		acc[ri.Ingredient.Name] = acc[ri.Ingredient.Name].Add(amount)
	}
}

// breakdownFromAmounts converts the accumulated per-ingredient costs into
// shares of the headline COGS. Both come from the same WAC recompute, so the
// percentages sum to ~100%.
func breakdownFromAmounts(acc map[string]decimal.Decimal, totalCOGS decimal.Decimal) []dto.IngredientShare {
	shares := make([]dto.IngredientShare, 0, len(acc))
	for name, amount := range acc {
		share := dto.IngredientShare{Name: name, Amount: amount}
		if totalCOGS.IsPositive() {
			share.Percentage = amount.Div(totalCOGS).Mul(decimal.NewFromInt(100))
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		return shares[i].Amount.GreaterThan(shares[j].Amount)
	})
	return shares
}

// periodKey buckets a date by the report period: daily = ISO date, weekly =
// Sunday-aligned week start date, monthly = YYYY-MM, yearly = YYYY.
func periodKey(t time.Time, period string) string {
	switch period {
	case "weekly":
		weekStart := t.AddDate(0, 0, -int(t.Weekday()))
		return weekStart.Format("2006-01-02")
	case "monthly":
		return t.Format("2006-01")
	case "yearly":
		return t.Format("2006")
	default: // daily
		return t.Format("2006-01-02")
	}
}

func headOf(products []dto.ProductProfit, n int) []dto.ProductProfit {
	if len(products) < n {
		n = len(products)
	}
	return append([]dto.ProductProfit(nil), products[:n]...)
}

func tailOf(products []dto.ProductProfit, n int) []dto.ProductProfit {
	if len(products) < n {
		n = len(products)
	}
	return append([]dto.ProductProfit(nil), products[len(products)-n:]...)
}
