package sales

import (
	"github.com/google/uuid"

	"github.com/calegria/bookstore-backend/internal/domain"
)

// RecordSaleInput holds the parameters for recording a sale.
type RecordSaleInput struct {
	BookID   uuid.UUID
	Quantity int
}

// Validate checks all fields and collects all errors.
func (i *RecordSaleInput) Validate() error {
	var errs []domain.FieldError

	if i.BookID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "book_id", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
