package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is a single title in the store inventory.
// Stock is never negative; the books table carries a CHECK constraint and
// the sales pipeline only decrements through a conditional update.
type Book struct {
	ID        uuid.UUID
	Title     string
	Author    string
	ISBN      *string
	Price     decimal.Decimal
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InStock returns true if at least qty copies are available.
func (b *Book) InStock(qty int) bool {
	return qty > 0 && b.Stock >= qty
}
