package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/costing"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventorySyncService owns every stock/WAC mutation. Each change lands as a
// conditional UPDATE plus an audit row in stock_movements.
type InventorySyncService interface {
	// ApplyPurchase blends a purchase into stock and the running WAC.
	ApplyPurchase(ctx context.Context, userID, ingredientID uuid.UUID, qty, unitPrice decimal.Decimal, refID uuid.UUID) error
	// ReversePurchase backs a purchase's quantity out of stock. The WAC is
	// left as-is — an accepted approximation, the blend is not replayed.
	ReversePurchase(ctx context.Context, userID, ingredientID uuid.UUID, qty decimal.Decimal, refID uuid.UUID) error
	// DeductUsage records production usage for a delivered order. Stock may
	// go negative; the shortfall is visible in the movement log.
	DeductUsage(ctx context.Context, userID, ingredientID uuid.UUID, qty decimal.Decimal, unit string, refID uuid.UUID) error
}

type inventorySync struct {
	ingredients repository.IngredientRepository
	movements   repository.StockMovementRepository
	users       repository.UserRepository
	dispatcher  *worker.Dispatcher
}

func NewInventorySyncService(
	ingredients repository.IngredientRepository,
	movements repository.StockMovementRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
) InventorySyncService {
	return &inventorySync{
		ingredients: ingredients,
		movements:   movements,
		users:       users,
		dispatcher:  dispatcher,
	}
}

func (s *inventorySync) ApplyPurchase(ctx context.Context, userID, ingredientID uuid.UUID, qty, unitPrice decimal.Decimal, refID uuid.UUID) error {
	// Optimistic WAC guard: compute the new blend from a snapshot, write it
	// only if the snapshot still holds, and retry once on a lost race.
	for attempt := 0; attempt < 2; attempt++ {
		ing, err := s.ingredients.FindByID(ctx, userID, ingredientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		newStock, newWAC := costing.ApplyPurchase(ing.CurrentStock, ing.WeightedAverageCost, qty, unitPrice)

		rows, err := s.ingredients.ApplyStockDelta(ctx, userID, ingredientID, qty, ing.WeightedAverageCost, newWAC)
		if err != nil {
			return err
		}
		if rows == 0 {
			continue // concurrent WAC change, re-read and retry
		}

		s.record(ctx, &model.StockMovement{
			UserID:       userID,
			IngredientID: ingredientID,
			Type:         model.MovementPurchase,
			Quantity:     qty,
			StockBefore:  ing.CurrentStock,
			StockAfter:   newStock,
			Reason:       "purchase recorded",
			ReferenceID:  &refID,
		})

		if newStock.LessThan(ing.MinStock) {
			s.alertLowStock(ctx, userID, ing, newStock)
		}
		return nil
	}
	return fmt.Errorf("stock update lost the optimistic race twice for ingredient %s", ingredientID)
}

func (s *inventorySync) ReversePurchase(ctx context.Context, userID, ingredientID uuid.UUID, qty decimal.Decimal, refID uuid.UUID) error {
	ing, err := s.ingredients.FindByID(ctx, userID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	delta := qty.Neg()
	if err := s.ingredients.AddStock(ctx, userID, ingredientID, delta); err != nil {
		return err
	}

	s.record(ctx, &model.StockMovement{
		UserID:       userID,
		IngredientID: ingredientID,
		Type:         model.MovementReversal,
		Quantity:     delta,
		StockBefore:  ing.CurrentStock,
		StockAfter:   ing.CurrentStock.Add(delta),
		Reason:       "purchase reversed",
		ReferenceID:  &refID,
	})
	return nil
}

func (s *inventorySync) DeductUsage(ctx context.Context, userID, ingredientID uuid.UUID, qty decimal.Decimal, unit string, refID uuid.UUID) error {
	ing, err := s.ingredients.FindByID(ctx, userID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	used := costing.Convert(qty, unit, ing.Unit)
	delta := used.Neg()
	if err := s.ingredients.AddStock(ctx, userID, ingredientID, delta); err != nil {
		return err
	}

	newStock := ing.CurrentStock.Add(delta)
	s.record(ctx, &model.StockMovement{
		UserID:       userID,
		IngredientID: ingredientID,
		Type:         model.MovementUsage,
		Quantity:     delta,
		StockBefore:  ing.CurrentStock,
		StockAfter:   newStock,
		Reason:       "order delivered",
		ReferenceID:  &refID,
	})

	if newStock.LessThan(ing.MinStock) {
		s.alertLowStock(ctx, userID, ing, newStock)
	}
	return nil
}

// record writes the audit row. A failed audit write never fails the stock
// mutation that already landed.
func (s *inventorySync) record(ctx context.Context, m *model.StockMovement) {
	if err := s.movements.Create(ctx, m); err != nil {
		log.Warn().Err(err).
			Str("ingredient_id", m.IngredientID.String()).
			Str("type", m.Type).
			Msg("inventory: stock movement audit write failed")
	}
}

// alertLowStock enqueues a notification mail, best-effort.
func (s *inventorySync) alertLowStock(ctx context.Context, userID uuid.UUID, ing *model.Ingredient, newStock decimal.Decimal) {
	if s.dispatcher == nil || s.users == nil {
		return
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return
	}
	payload := worker.EmailJobPayload{
		ToEmail: user.Email,
		Subject: fmt.Sprintf("Stok menipis: %s", ing.Name),
		Body:    worker.LowStockBody(ing.Name, newStock.String(), ing.MinStock.String(), ing.Unit),
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Warn().Err(err).Str("ingredient", ing.Name).Msg("inventory: low stock alert enqueue failed")
	}
}
