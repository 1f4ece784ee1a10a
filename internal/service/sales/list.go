package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/calegria/bookstore-backend/internal/domain"
)

// ListSales returns ledger entries matching the filter, with book titles
// joined in.
func (s *Service) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleWithTitle, error) {
	sales, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// GetSale returns a single ledger entry by id.
func (s *Service) GetSale(ctx context.Context, id uuid.UUID) (*domain.SaleWithTitle, error) {
	return s.sales.GetByID(ctx, id)
}
