package service

import (
	"context"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
)

// SupplierService exposes the aggregated purchase statistics the pipeline
// maintains. Suppliers are derived from purchases, never created directly.
type SupplierService interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.SupplierResponse, error)
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) List(ctx context.Context, userID uuid.UUID) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		sup := &suppliers[i]
		resp := dto.SupplierResponse{
			ID:             sup.ID.String(),
			Name:           sup.Name,
			TotalPurchases: sup.TotalPurchases,
			TotalSpent:     sup.TotalSpent,
		}
		if sup.LastPurchaseDate != nil {
			d := sup.LastPurchaseDate.Format("2006-01-02")
			resp.LastPurchaseDate = &d
		}
		out = append(out, resp)
	}
	return out, nil
}
