package service

import (
	"context"
	"errors"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngredientService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.IngredientResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.IngredientFilter) (*dto.IngredientListResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Movements(ctx context.Context, userID uuid.UUID, filter repository.StockMovementFilter) ([]model.StockMovement, int64, error)
}

type ingredientService struct {
	repo      repository.IngredientRepository
	movements repository.StockMovementRepository
	hpp       HPPService
}

func NewIngredientService(
	repo repository.IngredientRepository,
	movements repository.StockMovementRepository,
	hpp HPPService,
) IngredientService {
	return &ingredientService{repo: repo, movements: movements, hpp: hpp}
}

func (s *ingredientService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	ing := &model.Ingredient{
		UserID:       userID,
		Name:         req.Name,
		Unit:         req.Unit,
		Category:     req.Category,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		PricePerUnit: req.PricePerUnit,
		// Opening stock carries the list price as its initial blended cost.
		WeightedAverageCost: req.PricePerUnit,
		Supplier:            req.Supplier,
		Active:              true,
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return IngredientToResponse(ing), nil
}

func (s *ingredientService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return IngredientToResponse(ing), nil
}

func (s *ingredientService) List(ctx context.Context, userID uuid.UUID, filter dto.IngredientFilter) (*dto.IngredientListResponse, error) {
	ingredients, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		items = append(items, *IngredientToResponse(&ingredients[i]))
	}
	return &dto.IngredientListResponse{
		Items: items, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

func (s *ingredientService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	priceChanged := false
	if req.Name != nil {
		ing.Name = *req.Name
	}
	if req.Unit != nil {
		ing.Unit = *req.Unit
	}
	if req.Category != nil {
		ing.Category = *req.Category
	}
	if req.MinStock != nil {
		ing.MinStock = *req.MinStock
	}
	if req.PricePerUnit != nil && !req.PricePerUnit.Equal(ing.PricePerUnit) {
		ing.PricePerUnit = *req.PricePerUnit
		priceChanged = true
	}
	if req.Supplier != nil {
		ing.Supplier = req.Supplier
	}

	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}

	// A reference-price edit does not move the WAC, but recipes display
	// margins against the latest costs, so refresh them anyway.
	if priceChanged && s.hpp != nil {
		_ = s.hpp.OnIngredientCostChange(ctx, userID, ing.ID)
	}
	return IngredientToResponse(ing), nil
}

func (s *ingredientService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.SoftDelete(ctx, userID, id)
}

func (s *ingredientService) Movements(ctx context.Context, userID uuid.UUID, filter repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return s.movements.List(ctx, userID, filter)
}

// IngredientToResponse maps the model to its wire shape. LowStock is derived,
// not stored.
func IngredientToResponse(ing *model.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:                  ing.ID.String(),
		Name:                ing.Name,
		Unit:                ing.Unit,
		Category:            ing.Category,
		CurrentStock:        ing.CurrentStock,
		MinStock:            ing.MinStock,
		WeightedAverageCost: ing.WeightedAverageCost,
		PricePerUnit:        ing.PricePerUnit,
		Supplier:            ing.Supplier,
		LowStock:            ing.CurrentStock.LessThan(ing.MinStock),
	}
}
