package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calegria/bookstore-backend/internal/domain"
)

type mockBookRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	ListFunc    func(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	CreateFunc  func(ctx context.Context, b *domain.Book) (*domain.Book, error)
	UpdateFunc  func(ctx context.Context, b *domain.Book) (*domain.Book, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockBookRepo) List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockBookRepo) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	b.ID = uuid.New()
	return b, nil
}

func (m *mockBookRepo) Update(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, b)
	}
	return b, nil
}

func (m *mockBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func newTestService(repo *mockBookRepo) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func validInput() BookInput {
	return BookInput{
		Title:  "Clean Architecture",
		Author: "Robert Martin",
		Price:  decimal.RequireFromString("29.99"),
		Stock:  12,
	}
}

func TestService_CreateBook(t *testing.T) {
	t.Parallel()

	var captured *domain.Book
	repo := &mockBookRepo{
		CreateFunc: func(_ context.Context, b *domain.Book) (*domain.Book, error) {
			captured = b
			b.ID = uuid.New()
			return b, nil
		},
	}
	svc := newTestService(repo)

	book, err := svc.CreateBook(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Equal(t, "Clean Architecture", captured.Title)
	assert.Equal(t, 12, captured.Stock)
	assert.True(t, captured.Price.Equal(decimal.RequireFromString("29.99")))
}

func TestService_CreateBook_Validation(t *testing.T) {
	t.Parallel()

	longISBN := "978-0-0000-0000-000000"

	tests := []struct {
		name   string
		mutate func(*BookInput)
		field  string
	}{
		{"missing title", func(i *BookInput) { i.Title = "" }, "title"},
		{"missing author", func(i *BookInput) { i.Author = "" }, "author"},
		{"negative price", func(i *BookInput) { i.Price = decimal.RequireFromString("-1") }, "price"},
		{"negative stock", func(i *BookInput) { i.Stock = -1 }, "stock"},
		{"isbn too long", func(i *BookInput) { i.ISBN = &longISBN }, "isbn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockBookRepo{
				CreateFunc: func(_ context.Context, _ *domain.Book) (*domain.Book, error) {
					t.Fatal("repo must not be called on invalid input")
					return nil, nil
				},
			}
			svc := newTestService(repo)

			input := validInput()
			tt.mutate(&input)

			_, err := svc.CreateBook(context.Background(), input)
			require.ErrorIs(t, err, domain.ErrValidation)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Errors)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
}

func TestService_UpdateBook_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockBookRepo{
		UpdateFunc: func(_ context.Context, _ *domain.Book) (*domain.Book, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.UpdateBook(context.Background(), uuid.New(), validInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_DeleteBook_WithSalesConflicts(t *testing.T) {
	t.Parallel()

	repo := &mockBookRepo{
		DeleteFunc: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrConflict
		},
	}
	svc := newTestService(repo)

	err := svc.DeleteBook(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_ListBooks_PassesFilter(t *testing.T) {
	t.Parallel()

	var seen domain.BookFilter
	repo := &mockBookRepo{
		ListFunc: func(_ context.Context, filter domain.BookFilter) ([]domain.Book, error) {
			seen = filter
			return []domain.Book{{Title: "a"}, {Title: "b"}}, nil
		},
	}
	svc := newTestService(repo)

	search := "go"
	books, err := svc.ListBooks(context.Background(), domain.BookFilter{
		Search:       &search,
		LowStockOnly: true,
		Threshold:    5,
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Len(t, books, 2)
	require.NotNil(t, seen.Search)
	assert.Equal(t, "go", *seen.Search)
	assert.True(t, seen.LowStockOnly)
}

func TestService_GetBook_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockBookRepo{})

	_, err := svc.GetBook(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
