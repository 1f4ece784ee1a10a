// Package catalog implements book inventory management: the CRUD
// surface of the store.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/calegria/bookstore-backend/internal/domain"
)

// bookRepo is the slice of the catalog store this service needs.
type bookRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	Update(ctx context.Context, b *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service implements the catalog business logic.
type Service struct {
	log   *slog.Logger
	books bookRepo
}

// NewService creates a new catalog service.
func NewService(logger *slog.Logger, books bookRepo) *Service {
	return &Service{
		log:   logger.With("service", "catalog"),
		books: books,
	}
}
