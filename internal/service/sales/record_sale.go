package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calegria/bookstore-backend/internal/domain"
	"github.com/calegria/bookstore-backend/internal/notify"
)

// RecordSale records a sale and decrements the book's stock in one
// transaction. The total is the book's price at this instant times the
// quantity. If the resulting stock falls below the low-stock threshold,
// an alert is published after the transaction commits.
//
// The stock write is conditional (stock >= quantity), so concurrent
// sales against the same book cannot overdraw it: the loser of the race
// gets an *domain.InsufficientStockError and nothing is persisted.
func (s *Service) RecordSale(ctx context.Context, input RecordSaleInput) (*domain.SaleReceipt, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		receipt *domain.SaleReceipt
		alert   *domain.LowStockAlert
	)

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		book, err := s.books.GetByID(txCtx, input.BookID)
		if err != nil {
			return err
		}
		if !book.InStock(input.Quantity) {
			return &domain.InsufficientStockError{
				Available: book.Stock,
				Requested: input.Quantity,
			}
		}

		// Conditional write: fails for the loser of a concurrent race
		// even though the read above passed, rolling the whole sale back.
		remaining, err := s.books.DecrementStock(txCtx, book.ID, input.Quantity)
		if err != nil {
			return err
		}

		total := book.Price.Mul(decimal.NewFromInt(int64(input.Quantity)))

		sale, err := s.sales.Create(txCtx, &domain.Sale{
			BookID:      book.ID,
			Quantity:    input.Quantity,
			TotalAmount: total,
			SoldAt:      time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("append sale: %w", err)
		}

		receipt = &domain.SaleReceipt{
			SaleID:      sale.ID,
			BookID:      book.ID,
			BookTitle:   book.Title,
			Quantity:    sale.Quantity,
			TotalAmount: sale.TotalAmount,
			SoldAt:      sale.SoldAt,
		}

		// Threshold check uses post-decrement stock: every sale that
		// leaves the book below the threshold re-fires the alert.
		if remaining < s.cfg.LowStockThreshold {
			alert = &domain.LowStockAlert{
				BookID:    book.ID,
				Title:     book.Title,
				Author:    book.Author,
				Remaining: remaining,
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("sale recorded",
		"sale_id", receipt.SaleID,
		"book_id", receipt.BookID,
		"quantity", receipt.Quantity,
		"total", receipt.TotalAmount,
	)

	// Published only after commit; fire-and-forget, cannot fail the sale.
	if alert != nil {
		s.alerts.Publish(notify.TopicLowStock, alert.Message())
		s.log.Warn("low stock",
			"book_id", alert.BookID,
			"title", alert.Title,
			"remaining", alert.Remaining,
		)
	}

	return receipt, nil
}
