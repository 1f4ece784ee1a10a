package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/calegria/bookstore-backend/internal/domain"
)

// BookInput holds the fields for creating or fully updating a book.
type BookInput struct {
	Title  string
	Author string
	ISBN   *string
	Price  decimal.Decimal
	Stock  int
}

// Validate checks all fields and collects all errors.
func (i *BookInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 500 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 500)"})
	}

	if i.Author == "" {
		errs = append(errs, domain.FieldError{Field: "author", Message: "required"})
	} else if len(i.Author) > 500 {
		errs = append(errs, domain.FieldError{Field: "author", Message: "too long (max 500)"})
	}

	if i.ISBN != nil && len(*i.ISBN) > 20 {
		errs = append(errs, domain.FieldError{Field: "isbn", Message: "too long (max 20)"})
	}

	if i.Price.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must be >= 0"})
	}

	if i.Stock < 0 {
		errs = append(errs, domain.FieldError{Field: "stock", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
