// Package sale implements the append-only sale ledger using PostgreSQL,
// including the aggregate queries behind the analytics endpoints.
package sale

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/calegria/bookstore-backend/internal/adapter/postgres"
	"github.com/calegria/bookstore-backend/internal/domain"
)

// Repo provides sale persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sale repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const insertSaleSQL = `
INSERT INTO sales (id, book_id, quantity, total_amount, sold_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, book_id, quantity, total_amount, sold_at`

const getSaleSQL = `
SELECT s.id, s.book_id, s.quantity, s.total_amount, s.sold_at, COALESCE(b.title, '')
FROM sales s
LEFT JOIN books b ON b.id = s.book_id
WHERE s.id = $1`

const totalRevenueSQL = `SELECT COALESCE(SUM(total_amount), 0) FROM sales`

const countSalesSQL = `SELECT COUNT(*) FROM sales`

const totalQuantitySQL = `SELECT COALESCE(SUM(quantity), 0)::bigint FROM sales`

const topBooksSQL = `
SELECT b.id, b.title, b.author, SUM(s.quantity)::bigint AS quantity_sold, SUM(s.total_amount) AS revenue
FROM sales s
JOIN books b ON b.id = s.book_id
GROUP BY b.id, b.title, b.author
ORDER BY quantity_sold DESC, revenue DESC
LIMIT $1`

const revenueBetweenSQL = `
SELECT COALESCE(SUM(total_amount), 0)
FROM sales
WHERE sold_at BETWEEN $1 AND $2`

// Create appends a sale to the ledger. A nil ID is assigned here; a zero
// SoldAt defaults to now.
func (r *Repo) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SoldAt.IsZero() {
		s.SoldAt = time.Now().UTC()
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var created domain.Sale
	err := q.QueryRow(ctx, insertSaleSQL, s.ID, s.BookID, s.Quantity, s.TotalAmount, s.SoldAt).
		Scan(&created.ID, &created.BookID, &created.Quantity, &created.TotalAmount, &created.SoldAt)
	if err != nil {
		return nil, postgres.MapError(err, "sale", s.ID)
	}
	return &created, nil
}

// GetByID returns a single ledger entry with the book title joined in.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SaleWithTitle, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.SaleWithTitle
	err := q.QueryRow(ctx, getSaleSQL, id).
		Scan(&s.ID, &s.BookID, &s.Quantity, &s.TotalAmount, &s.SoldAt, &s.BookTitle)
	if err != nil {
		return nil, postgres.MapError(err, "sale", id)
	}
	return &s, nil
}

// List returns ledger entries matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleWithTitle, error) {
	filter.Normalize()

	qb := psql.Select("s.id", "s.book_id", "s.quantity", "s.total_amount", "s.sold_at", "COALESCE(b.title, '')").
		From("sales s").
		LeftJoin("books b ON b.id = s.book_id").
		OrderBy("s.sold_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.BookID != nil {
		qb = qb.Where(sq.Eq{"s.book_id": *filter.BookID})
	}
	if filter.From != nil {
		qb = qb.Where(sq.GtOrEq{"s.sold_at": *filter.From})
	}
	if filter.To != nil {
		qb = qb.Where(sq.LtOrEq{"s.sold_at": *filter.To})
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales, err := scanSales(rows)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// TotalRevenue sums total_amount over the entire ledger.
func (r *Repo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.scanDecimal(ctx, totalRevenueSQL)
}

// CountSales returns the number of ledger entries.
func (r *Repo) CountSales(ctx context.Context) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int64
	if err := q.QueryRow(ctx, countSalesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

// TotalQuantity sums the quantity of every sale.
func (r *Repo) TotalQuantity(ctx context.Context) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int64
	if err := q.QueryRow(ctx, totalQuantitySQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("total quantity: %w", err)
	}
	return n, nil
}

// TopBooks ranks books by copies sold, with per-book revenue.
func (r *Repo) TopBooks(ctx context.Context, limit int) ([]domain.BookSalesSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, topBooksSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("top books: %w", err)
	}
	defer rows.Close()

	var out []domain.BookSalesSummary
	for rows.Next() {
		var s domain.BookSalesSummary
		if err := rows.Scan(&s.BookID, &s.Title, &s.Author, &s.QuantitySold, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan top book: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top books: %w", err)
	}
	return out, nil
}

// RevenueBetween sums total_amount for sales with sold_at in [from, to].
func (r *Repo) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total decimal.Decimal
	if err := q.QueryRow(ctx, revenueBetweenSQL, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("revenue between: %w", err)
	}
	return total, nil
}

func (r *Repo) scanDecimal(ctx context.Context, sqlStr string) (decimal.Decimal, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total decimal.Decimal
	if err := q.QueryRow(ctx, sqlStr).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("aggregate: %w", err)
	}
	return total, nil
}

func scanSales(rows pgx.Rows) ([]domain.SaleWithTitle, error) {
	var sales []domain.SaleWithTitle
	for rows.Next() {
		var s domain.SaleWithTitle
		if err := rows.Scan(&s.ID, &s.BookID, &s.Quantity, &s.TotalAmount, &s.SoldAt, &s.BookTitle); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}
