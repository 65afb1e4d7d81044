package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/cache"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// validTransitions is the order status machine. DELIVERED and CANCELLED are
// final; history never mutates after either.
var validTransitions = map[string][]string{
	model.OrderPending:    {model.OrderConfirmed, model.OrderCancelled},
	model.OrderConfirmed:  {model.OrderInProgress, model.OrderCancelled},
	model.OrderInProgress: {model.OrderReady, model.OrderCancelled},
	model.OrderReady:      {model.OrderDelivered, model.OrderCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	// UpdateStatus validates the transition; moving to DELIVERED triggers the
	// best-effort delivery pipeline (stock usage, income sync).
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) (*dto.OrderResponse, error)
}

type orderService struct {
	orders      repository.OrderRepository
	recipes     repository.RecipeRepository
	inventory   InventorySyncService
	finance     FinanceSyncService
	reportCache cache.ReportCache
}

func NewOrderService(
	orders repository.OrderRepository,
	recipes repository.RecipeRepository,
	inventory InventorySyncService,
	finance FinanceSyncService,
	reportCache cache.ReportCache,
) OrderService {
	return &orderService{
		orders:      orders,
		recipes:     recipes,
		inventory:   inventory,
		finance:     finance,
		reportCache: reportCache,
	}
}

func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("invalid delivery_date: %w", err)
	}

	// Resolve recipes and price lines at today's selling prices.
	var items []model.OrderItem
	total := decimal.Zero
	for _, in := range req.Items {
		recipeID, err := uuid.Parse(in.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("invalid recipe_id: %w", err)
		}
		rec, err := s.recipes.FindByID(ctx, userID, recipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("recipe %s: %w", in.RecipeID, ErrNotFound)
			}
			return nil, err
		}
		lineTotal := rec.SellingPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		items = append(items, model.OrderItem{
			RecipeID:   recipeID,
			Quantity:   in.Quantity,
			UnitPrice:  rec.SellingPrice,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	orderNo, err := s.nextOrderNo(ctx, userID)
	if err != nil {
		return nil, err
	}

	o := &model.Order{
		UserID:       userID,
		OrderNo:      orderNo,
		CustomerName: req.CustomerName,
		Status:       model.OrderPending,
		DeliveryDate: deliveryDate,
		TotalAmount:  total,
		Notes:        req.Notes,
		Items:        items,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, o.ID)
}

func (s *orderService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return orderToResponse(o), nil
}

func (s *orderService) List(ctx context.Context, userID uuid.UUID, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	orders, total, err := s.orders.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Items: items, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if o.Status == model.OrderDelivered || o.Status == model.OrderCancelled {
		return nil, ErrOrderFinal
	}
	if !transitionAllowed(o.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, userID, id, status); err != nil {
		return nil, err
	}
	o.Status = status

	var warnings []string
	if status == model.OrderDelivered {
		warnings = s.runDeliveryPipeline(ctx, o)
	}

	resp := orderToResponse(o)
	resp.SyncWarnings = warnings
	return resp, nil
}

// runDeliveryPipeline fires the best-effort side effects of a DELIVERED
// transition. The status change has already committed when this runs.
func (s *orderService) runDeliveryPipeline(ctx context.Context, o *model.Order) []string {
	return runPipeline(ctx, []syncStep{
		{"stock_usage", func(ctx context.Context) error {
			return s.deductUsage(ctx, o)
		}},
		{"income_sync", func(ctx context.Context) error {
			return s.finance.CreateIncomeFromOrder(ctx, o)
		}},
		{"cache_invalidate", func(ctx context.Context) error {
			return s.reportCache.InvalidatePrefix(ctx, "report:"+o.UserID.String())
		}},
	})
}

// deductUsage fans out over each order line's recipe ingredients, scaling the
// per-batch quantity by pieces sold over batch yield.
func (s *orderService) deductUsage(ctx context.Context, o *model.Order) error {
	var firstErr error
	for _, item := range o.Items {
		rec, err := s.recipes.FindByID(ctx, o.UserID, item.RecipeID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		yield := rec.YieldPcs
		if yield < 1 {
			yield = 1
		}
		scale := decimal.NewFromInt(int64(item.Quantity)).Div(decimal.NewFromInt(int64(yield)))
		for _, ri := range rec.Ingredients {
			used := ri.Quantity.Mul(scale)
			if err := s.inventory.DeductUsage(ctx, o.UserID, ri.IngredientID, used, ri.Unit, o.ID); err != nil {
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	return firstErr
}

// nextOrderNo builds a human-readable daily sequence: ORD-20250131-003.
func (s *orderService) nextOrderNo(ctx context.Context, userID uuid.UUID) (string, error) {
	today := time.Now()
	n, err := s.orders.CountForDay(ctx, userID, today)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%03d", today.Format("20060102"), n+1), nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		line := dto.OrderItemResponse{
			RecipeID:   it.RecipeID.String(),
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		}
		if it.Recipe != nil {
			line.RecipeName = it.Recipe.Name
		}
		items = append(items, line)
	}
	return &dto.OrderResponse{
		ID:           o.ID.String(),
		OrderNo:      o.OrderNo,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		DeliveryDate: o.DeliveryDate.Format("2006-01-02"),
		TotalAmount:  o.TotalAmount,
		Notes:        o.Notes,
		Items:        items,
	}
}
