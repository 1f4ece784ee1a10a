// Package sales implements the stock-update pipeline: recording a sale,
// decrementing inventory atomically, and publishing low-stock alerts.
package sales

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/calegria/bookstore-backend/internal/config"
	"github.com/calegria/bookstore-backend/internal/domain"
)

// bookRepo is the slice of the catalog store the pipeline needs.
type bookRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int, error)
}

// saleRepo is the slice of the sale ledger the pipeline needs.
type saleRepo interface {
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SaleWithTitle, error)
	List(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleWithTitle, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// alertPublisher is the broadcast side of the notification broker.
// Publish must never block.
type alertPublisher interface {
	Publish(topic, message string)
}

// Service implements the sales business logic.
type Service struct {
	log    *slog.Logger
	books  bookRepo
	sales  saleRepo
	tx     txManager
	alerts alertPublisher
	cfg    config.InventoryConfig
}

// NewService creates a new sales service.
func NewService(
	logger *slog.Logger,
	books bookRepo,
	sales saleRepo,
	tx txManager,
	alerts alertPublisher,
	cfg config.InventoryConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "sales"),
		books:  books,
		sales:  sales,
		tx:     tx,
		alerts: alerts,
		cfg:    cfg,
	}
}
