package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one completed transaction in the sale ledger. Sales are
// append-only and immutable; TotalAmount is the price at the moment of
// sale times the quantity, so later price changes never rewrite history.
type Sale struct {
	ID          uuid.UUID
	BookID      uuid.UUID
	Quantity    int
	TotalAmount decimal.Decimal
	SoldAt      time.Time
}

// SaleWithTitle is a ledger row joined with the book's current title,
// for listings. A deleted book leaves the title empty.
type SaleWithTitle struct {
	Sale
	BookTitle string
}

// SaleReceipt is what the caller gets back from a recorded sale.
type SaleReceipt struct {
	SaleID      uuid.UUID
	BookID      uuid.UUID
	BookTitle   string
	Quantity    int
	TotalAmount decimal.Decimal
	SoldAt      time.Time
}

// SalesSummary aggregates the whole ledger for the dashboard.
type SalesSummary struct {
	TotalRevenue  decimal.Decimal
	TotalSales    int64
	TotalQuantity int64
	TopBooks      []BookSalesSummary
}

// BookSalesSummary is the per-book aggregate used for top-seller rankings.
type BookSalesSummary struct {
	BookID       uuid.UUID
	Title        string
	Author       string
	QuantitySold int64
	Revenue      decimal.Decimal
}
