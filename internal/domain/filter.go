package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookFilter defines parameters for listing books.
type BookFilter struct {
	// Search performs ILIKE '%...%' on title and author.
	// nil or empty string means no text filter.
	Search *string

	// LowStockOnly keeps only books with stock below the given threshold.
	LowStockOnly bool
	Threshold    int

	// Limit is the maximum number of books to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of books to skip.
	Offset int
}

// SaleFilter defines parameters for listing ledger entries.
type SaleFilter struct {
	// BookID restricts the listing to sales of a single book.
	BookID *uuid.UUID

	// From and To bound SoldAt inclusively.
	From *time.Time
	To   *time.Time

	Limit  int
	Offset int
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Normalize applies defaults and clamps limits.
func (f *BookFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Normalize applies defaults and clamps limits.
func (f *SaleFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
