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
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// The purchase pipeline: the purchase row is the unit of success. Once it
// commits, the follow-up steps run in order and a failure in any of them is
// reported as a warning, never as a request failure.
//
//	stock_sync → expense_sync → hpp_recalc → supplier_stats → cache_invalidate

type syncStep struct {
	name string
	run  func(ctx context.Context) error
}

// stepResult captures one pipeline step outcome for logging and the
// sync_warnings field of the response.
type stepResult struct {
	step string
	err  error
}

// runPipeline executes every step regardless of earlier failures and returns
// the warning strings for the failed ones.
func runPipeline(ctx context.Context, steps []syncStep) []string {
	var results []stepResult
	for _, st := range steps {
		results = append(results, stepResult{step: st.name, err: st.run(ctx)})
	}

	var warnings []string
	for _, res := range results {
		if res.err == nil {
			continue
		}
		log.Warn().Err(res.err).Str("step", res.step).Msg("purchase pipeline step failed")
		warnings = append(warnings, fmt.Sprintf("%s: %s", res.step, res.err))
	}
	return warnings
}

type PurchaseService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (warnings []string, err error)
}

type purchaseService struct {
	purchases   repository.PurchaseRepository
	ingredients repository.IngredientRepository
	suppliers   repository.SupplierRepository
	inventory   InventorySyncService
	finance     FinanceSyncService
	hpp         HPPService
	reportCache cache.ReportCache
}

func NewPurchaseService(
	purchases repository.PurchaseRepository,
	ingredients repository.IngredientRepository,
	suppliers repository.SupplierRepository,
	inventory InventorySyncService,
	finance FinanceSyncService,
	hpp HPPService,
	reportCache cache.ReportCache,
) PurchaseService {
	return &purchaseService{
		purchases:   purchases,
		ingredients: ingredients,
		suppliers:   suppliers,
		inventory:   inventory,
		finance:     finance,
		hpp:         hpp,
		reportCache: reportCache,
	}
}

func (s *purchaseService) Create(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	ingredientID, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("invalid ingredient_id: %w", err)
	}

	// Pre-flight: the ingredient must exist before the row commits.
	ing, err := s.ingredients.FindByID(ctx, userID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		purchaseDate, _ = time.Parse("2006-01-02", req.PurchaseDate)
	}

	p := &model.IngredientPurchase{
		UserID:       userID,
		IngredientID: ingredientID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		TotalPrice:   req.Quantity.Mul(req.UnitPrice),
		Supplier:     req.Supplier,
		PurchaseDate: purchaseDate,
		Notes:        req.Notes,
	}
	if err := s.purchases.Create(ctx, p); err != nil {
		return nil, err
	}

	warnings := runPipeline(ctx, []syncStep{
		{"stock_sync", func(ctx context.Context) error {
			return s.inventory.ApplyPurchase(ctx, userID, ingredientID, p.Quantity, p.UnitPrice, p.ID)
		}},
		{"expense_sync", func(ctx context.Context) error {
			expenseID, err := s.finance.CreateExpenseFromPurchase(ctx, p, ing.Name)
			if err != nil {
				return err
			}
			p.ExpenseID = expenseID
			return s.purchases.SetExpenseID(ctx, p.ID, expenseID)
		}},
		{"hpp_recalc", func(ctx context.Context) error {
			return s.hpp.OnIngredientCostChange(ctx, userID, ingredientID)
		}},
		{"supplier_stats", func(ctx context.Context) error {
			if p.Supplier == nil || *p.Supplier == "" {
				return nil
			}
			return s.suppliers.RecordPurchase(ctx, userID, *p.Supplier, p.TotalPrice, 1, p.PurchaseDate)
		}},
		{"cache_invalidate", func(ctx context.Context) error {
			return s.reportCache.InvalidatePrefix(ctx, "report:"+userID.String())
		}},
	})

	resp := purchaseToResponse(p, ing.Name)
	resp.SyncWarnings = warnings
	return resp, nil
}

func (s *purchaseService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.purchases.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return purchaseToResponse(p, ingredientName(p)), nil
}

func (s *purchaseService) List(ctx context.Context, userID uuid.UUID, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	purchases, total, err := s.purchases.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, *purchaseToResponse(&purchases[i], ingredientName(&purchases[i])))
	}
	return &dto.PurchaseListResponse{
		Items: items, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

// Update re-runs the pipeline as reverse-then-apply: the old quantities are
// backed out, the new ones blended in. The expense row is replaced.
func (s *purchaseService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := s.purchases.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	old := *p // snapshot for reversal

	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.Supplier != nil {
		p.Supplier = req.Supplier
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	p.TotalPrice = p.Quantity.Mul(p.UnitPrice)

	if err := s.purchases.Update(ctx, p); err != nil {
		return nil, err
	}

	warnings := runPipeline(ctx, []syncStep{
		{"stock_sync", func(ctx context.Context) error {
			if err := s.inventory.ReversePurchase(ctx, userID, p.IngredientID, old.Quantity, p.ID); err != nil {
				return err
			}
			return s.inventory.ApplyPurchase(ctx, userID, p.IngredientID, p.Quantity, p.UnitPrice, p.ID)
		}},
		{"expense_sync", func(ctx context.Context) error {
			if err := s.finance.DeleteExpenseForPurchase(ctx, &old); err != nil {
				return err
			}
			p.ExpenseID = nil
			expenseID, err := s.finance.CreateExpenseFromPurchase(ctx, p, ingredientName(p))
			if err != nil {
				return err
			}
			p.ExpenseID = expenseID
			return s.purchases.SetExpenseID(ctx, p.ID, expenseID)
		}},
		{"hpp_recalc", func(ctx context.Context) error {
			return s.hpp.OnIngredientCostChange(ctx, userID, p.IngredientID)
		}},
		{"supplier_stats", func(ctx context.Context) error {
			if old.Supplier != nil && *old.Supplier != "" {
				if err := s.suppliers.RecordPurchase(ctx, userID, *old.Supplier, old.TotalPrice.Neg(), -1, old.PurchaseDate); err != nil {
					return err
				}
			}
			if p.Supplier == nil || *p.Supplier == "" {
				return nil
			}
			return s.suppliers.RecordPurchase(ctx, userID, *p.Supplier, p.TotalPrice, 1, p.PurchaseDate)
		}},
		{"cache_invalidate", func(ctx context.Context) error {
			return s.reportCache.InvalidatePrefix(ctx, "report:"+userID.String())
		}},
	})

	resp := purchaseToResponse(p, ingredientName(p))
	resp.SyncWarnings = warnings
	return resp, nil
}

// Delete removes the purchase row, then backs its effects out best-effort.
func (s *purchaseService) Delete(ctx context.Context, userID, id uuid.UUID) ([]string, error) {
	p, err := s.purchases.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.purchases.Delete(ctx, userID, id); err != nil {
		return nil, err
	}

	warnings := runPipeline(ctx, []syncStep{
		{"stock_sync", func(ctx context.Context) error {
			return s.inventory.ReversePurchase(ctx, userID, p.IngredientID, p.Quantity, p.ID)
		}},
		{"expense_sync", func(ctx context.Context) error {
			return s.finance.DeleteExpenseForPurchase(ctx, p)
		}},
		{"hpp_recalc", func(ctx context.Context) error {
			return s.hpp.OnIngredientCostChange(ctx, userID, p.IngredientID)
		}},
		{"supplier_stats", func(ctx context.Context) error {
			if p.Supplier == nil || *p.Supplier == "" {
				return nil
			}
			return s.suppliers.RecordPurchase(ctx, userID, *p.Supplier, p.TotalPrice.Neg(), -1, p.PurchaseDate)
		}},
		{"cache_invalidate", func(ctx context.Context) error {
			return s.reportCache.InvalidatePrefix(ctx, "report:"+userID.String())
		}},
	})
	return warnings, nil
}

func ingredientName(p *model.IngredientPurchase) string {
	if p.Ingredient != nil {
		return p.Ingredient.Name
	}
	return ""
}

func purchaseToResponse(p *model.IngredientPurchase, ingredientName string) *dto.PurchaseResponse {
	var expenseID *string
	if p.ExpenseID != nil {
		id := p.ExpenseID.String()
		expenseID = &id
	}
	return &dto.PurchaseResponse{
		ID:             p.ID.String(),
		IngredientID:   p.IngredientID.String(),
		IngredientName: ingredientName,
		Quantity:       p.Quantity,
		UnitPrice:      p.UnitPrice,
		TotalPrice:     p.TotalPrice,
		Supplier:       p.Supplier,
		PurchaseDate:   p.PurchaseDate.Format("2006-01-02"),
		Notes:          p.Notes,
		ExpenseID:      expenseID,
	}
}
