package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinanceSyncService writes the auto-synced ledger lines that mirror
// operational events. Idempotency is a best-effort probe on transaction_id,
// not a unique constraint: a duplicate slipping through is tolerated.
type FinanceSyncService interface {
	// CreateExpenseFromPurchase mirrors a purchase into an EXPENSE row and
	// returns its id so the purchase can keep the soft link.
	CreateExpenseFromPurchase(ctx context.Context, p *model.IngredientPurchase, ingredientName string) (*uuid.UUID, error)
	// DeleteExpenseForPurchase removes the expense the purchase is linked to.
	// A purchase whose expense sync never ran carries no link, and the ledger
	// is left untouched.
	DeleteExpenseForPurchase(ctx context.Context, p *model.IngredientPurchase) error
	// CreateIncomeFromOrder mirrors a delivered order into an INCOME row.
	CreateIncomeFromOrder(ctx context.Context, o *model.Order) error
}

type financeSync struct {
	records repository.FinanceRepository
}

func NewFinanceSyncService(records repository.FinanceRepository) FinanceSyncService {
	return &financeSync{records: records}
}

func (s *financeSync) CreateExpenseFromPurchase(ctx context.Context, p *model.IngredientPurchase, ingredientName string) (*uuid.UUID, error) {
	if existing, err := s.records.FindByTransactionID(ctx, p.UserID, p.ID); err == nil {
		return &existing.ID, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	source := model.SyncSourcePurchase
	txID := p.ID
	rec := &model.FinancialRecord{
		UserID:        p.UserID,
		Type:          model.RecordExpense,
		Category:      "Pembelian Bahan",
		Amount:        p.TotalPrice,
		Description:   fmt.Sprintf("Pembelian %s (%s @ %s)", ingredientName, p.Quantity.String(), p.UnitPrice.String()),
		Date:          p.PurchaseDate,
		AutoSynced:    true,
		SyncSource:    &source,
		TransactionID: &txID,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return &rec.ID, nil
}

func (s *financeSync) DeleteExpenseForPurchase(ctx context.Context, p *model.IngredientPurchase) error {
	if p.ExpenseID == nil {
		return nil // expense sync never ran, nothing to clean up
	}
	if err := s.records.Delete(ctx, p.UserID, *p.ExpenseID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *financeSync) CreateIncomeFromOrder(ctx context.Context, o *model.Order) error {
	if _, err := s.records.FindByTransactionID(ctx, o.UserID, o.ID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	source := model.SyncSourceOrder
	txID := o.ID
	rec := &model.FinancialRecord{
		UserID:        o.UserID,
		Type:          model.RecordIncome,
		Category:      "Penjualan",
		Amount:        o.TotalAmount,
		Description:   fmt.Sprintf("Pesanan %s - %s", o.OrderNo, o.CustomerName),
		Date:          o.DeliveryDate,
		AutoSynced:    true,
		SyncSource:    &source,
		TransactionID: &txID,
	}
	return s.records.Create(ctx, rec)
}
