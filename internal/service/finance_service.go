package service

import (
	"context"
	"errors"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinanceService is the user-facing ledger: manual entries plus read access
// to the auto-synced rows the sync services write.
type FinanceService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateFinancialRecordRequest) (*dto.FinancialRecordResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.FinanceFilter) (*dto.FinanceListResponse, error)
	// Delete removes a manual entry. Auto-synced rows are managed by their
	// source transaction and cannot be deleted directly.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type financeService struct {
	records repository.FinanceRepository
}

func NewFinanceService(records repository.FinanceRepository) FinanceService {
	return &financeService{records: records}
}

func (s *financeService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateFinancialRecordRequest) (*dto.FinancialRecordResponse, error) {
	date, _ := time.Parse("2006-01-02", req.Date)
	rec := &model.FinancialRecord{
		UserID:      userID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return recordToResponse(rec), nil
}

func (s *financeService) List(ctx context.Context, userID uuid.UUID, filter dto.FinanceFilter) (*dto.FinanceListResponse, error) {
	records, total, err := s.records.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FinancialRecordResponse, 0, len(records))
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	for i := range records {
		items = append(items, *recordToResponse(&records[i]))
		switch records[i].Type {
		case model.RecordIncome:
			totalIncome = totalIncome.Add(records[i].Amount)
		case model.RecordExpense:
			totalExpense = totalExpense.Add(records[i].Amount)
		}
	}
	return &dto.FinanceListResponse{
		Items:        items,
		Total:        total,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}, nil
}

func (s *financeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	rec, err := s.records.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rec.AutoSynced {
		return ErrRecordProtected
	}
	return s.records.Delete(ctx, userID, id)
}

func recordToResponse(rec *model.FinancialRecord) *dto.FinancialRecordResponse {
	meta := dto.RecordMetadata{AutoSynced: rec.AutoSynced, Source: rec.SyncSource}
	if rec.TransactionID != nil {
		id := rec.TransactionID.String()
		meta.TransactionID = &id
	}
	return &dto.FinancialRecordResponse{
		ID:          rec.ID.String(),
		Type:        rec.Type,
		Category:    rec.Category,
		Amount:      rec.Amount,
		Description: rec.Description,
		Date:        rec.Date.Format("2006-01-02"),
		Metadata:    meta,
	}
}
