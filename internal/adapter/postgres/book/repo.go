// Package book implements the catalog store using PostgreSQL.
// Point lookups and writes use raw SQL; filtered listings are built
// with squirrel.
package book

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/calegria/bookstore-backend/internal/adapter/postgres"
	"github.com/calegria/bookstore-backend/internal/domain"
)

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new book repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const bookColumns = "id, title, author, isbn, price, stock, created_at, updated_at"

const getBookSQL = `
SELECT id, title, author, isbn, price, stock, created_at, updated_at
FROM books
WHERE id = $1`

const insertBookSQL = `
INSERT INTO books (id, title, author, isbn, price, stock)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, title, author, isbn, price, stock, created_at, updated_at`

const updateBookSQL = `
UPDATE books
SET title = $2, author = $3, isbn = $4, price = $5, stock = $6, updated_at = now()
WHERE id = $1
RETURNING id, title, author, isbn, price, stock, created_at, updated_at`

const deleteBookSQL = `DELETE FROM books WHERE id = $1`

const existsBookSQL = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`

// decrementStockSQL is a conditional write: it only fires when the book
// still has enough copies, so two concurrent sales can never jointly
// overdraw stock below zero.
const decrementStockSQL = `
UPDATE books
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2
RETURNING stock`

const selectStockSQL = `SELECT stock FROM books WHERE id = $1`

// GetByID returns a book by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b, err := scanBook(q.QueryRow(ctx, getBookSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "book", id)
	}
	return b, nil
}

// List returns books matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	filter.Normalize()

	qb := psql.Select(bookColumns).
		From("books").
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": like},
			sq.ILike{"author": like},
		})
	}
	if filter.LowStockOnly {
		qb = qb.Where(sq.Lt{"stock": filter.Threshold})
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Create inserts a new book. A nil ID is assigned here.
func (r *Repo) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanBook(q.QueryRow(ctx, insertBookSQL,
		b.ID, b.Title, b.Author, b.ISBN, b.Price, b.Stock))
	if err != nil {
		return nil, postgres.MapError(err, "book", b.ID)
	}
	return created, nil
}

// Update overwrites all mutable fields of a book.
func (r *Repo) Update(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanBook(q.QueryRow(ctx, updateBookSQL,
		b.ID, b.Title, b.Author, b.ISBN, b.Price, b.Stock))
	if err != nil {
		return nil, postgres.MapError(err, "book", b.ID)
	}
	return updated, nil
}

// Delete removes a book. Returns domain.ErrNotFound if the id is unknown
// and domain.ErrConflict if the book is referenced by sales.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteBookSQL, id)
	if err != nil {
		return postgres.MapError(err, "book", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Exists reports whether a book with the given id is present.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, existsBookSQL, id).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "book", id)
	}
	return exists, nil
}

// DecrementStock atomically subtracts qty from a book's stock and returns
// the remaining count. The update is conditional on stock >= qty; when the
// condition fails the current stock is re-read to tell a missing book
// (domain.ErrNotFound) apart from an overdraw
// (*domain.InsufficientStockError).
func (r *Repo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var remaining int
	err := q.QueryRow(ctx, decrementStockSQL, id, qty).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, postgres.MapError(err, "book", id)
	}

	var available int
	if err := q.QueryRow(ctx, selectStockSQL, id).Scan(&available); err != nil {
		return 0, postgres.MapError(err, "book", id)
	}
	return 0, &domain.InsufficientStockError{Available: available, Requested: qty}
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price, &b.Stock, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBooks(rows pgx.Rows) ([]domain.Book, error) {
	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price, &b.Stock, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}
