package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/calegria/bookstore-backend/internal/domain"
)

// ListBooks returns books matching the filter.
func (s *Service) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	books, err := s.books.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBook returns a single book by id.
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

// CreateBook adds a new title to the inventory.
func (s *Service) CreateBook(ctx context.Context, input BookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.Create(ctx, &domain.Book{
		Title:  input.Title,
		Author: input.Author,
		ISBN:   input.ISBN,
		Price:  input.Price,
		Stock:  input.Stock,
	})
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.log.Info("book created",
		"book_id", book.ID,
		"title", book.Title,
		"stock", book.Stock,
	)
	return book, nil
}

// UpdateBook overwrites all mutable fields of an existing book.
func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, input BookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.Update(ctx, &domain.Book{
		ID:     id,
		Title:  input.Title,
		Author: input.Author,
		ISBN:   input.ISBN,
		Price:  input.Price,
		Stock:  input.Stock,
	})
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.log.Info("book updated", "book_id", book.ID)
	return book, nil
}

// DeleteBook removes a title from the inventory. Books with recorded
// sales cannot be deleted (the ledger references them).
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.log.Info("book deleted", "book_id", id)
	return nil
}
