package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewValidationError("quantity", "must be positive")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation: quantity: must be positive", err.Error())
}

func TestValidationError_Multiple(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "title", Message: "required"},
		{Field: "price", Message: "must be >= 0"},
	})
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation: 2 errors", err.Error())
}

func TestInsufficientStockError(t *testing.T) {
	t.Parallel()

	err := &InsufficientStockError{Available: 1, Requested: 2}
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Equal(t, "insufficient stock: available 1, requested 2", err.Error())

	var ise *InsufficientStockError
	if assert.True(t, errors.As(error(err), &ise)) {
		assert.Equal(t, 1, ise.Available)
		assert.Equal(t, 2, ise.Requested)
	}
}
