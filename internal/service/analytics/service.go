// Package analytics exposes read-only aggregate projections over the
// sale ledger: revenue, counts, and top-seller rankings. All queries
// are idempotent and safe to run concurrently with ongoing sales.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calegria/bookstore-backend/internal/config"
	"github.com/calegria/bookstore-backend/internal/domain"
)

// saleAggregator is the aggregate-query slice of the sale ledger.
type saleAggregator interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	CountSales(ctx context.Context) (int64, error)
	TotalQuantity(ctx context.Context) (int64, error)
	TopBooks(ctx context.Context, limit int) ([]domain.BookSalesSummary, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// Service implements the analytics queries.
type Service struct {
	log   *slog.Logger
	sales saleAggregator
	cfg   config.InventoryConfig
}

// NewService creates a new analytics service.
func NewService(logger *slog.Logger, sales saleAggregator, cfg config.InventoryConfig) *Service {
	return &Service{
		log:   logger.With("service", "analytics"),
		sales: sales,
		cfg:   cfg,
	}
}

// Summary aggregates the whole ledger: total revenue, sale count, total
// quantity sold, and the default top-seller ranking.
func (s *Service) Summary(ctx context.Context) (*domain.SalesSummary, error) {
	revenue, err := s.sales.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}

	count, err := s.sales.CountSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sales: %w", err)
	}

	quantity, err := s.sales.TotalQuantity(ctx)
	if err != nil {
		return nil, fmt.Errorf("total quantity: %w", err)
	}

	top, err := s.sales.TopBooks(ctx, s.cfg.TopBooksLimit)
	if err != nil {
		return nil, fmt.Errorf("top books: %w", err)
	}

	return &domain.SalesSummary{
		TotalRevenue:  revenue,
		TotalSales:    count,
		TotalQuantity: quantity,
		TopBooks:      top,
	}, nil
}

// TopBooks ranks books by copies sold. A non-positive limit falls back
// to the configured default.
func (s *Service) TopBooks(ctx context.Context, limit int) ([]domain.BookSalesSummary, error) {
	if limit <= 0 {
		limit = s.cfg.TopBooksLimit
	}
	top, err := s.sales.TopBooks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top books: %w", err)
	}
	return top, nil
}

// RevenueBetween sums revenue for sales in the inclusive [from, to] range.
func (s *Service) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	if to.Before(from) {
		return decimal.Zero, domain.NewValidationError("range", "end must not precede start")
	}
	revenue, err := s.sales.RevenueBetween(ctx, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("revenue between: %w", err)
	}
	return revenue, nil
}
