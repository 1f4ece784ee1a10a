package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBook_InStock(t *testing.T) {
	t.Parallel()

	b := &Book{Stock: 3}

	tests := []struct {
		name string
		qty  int
		want bool
	}{
		{"exact", 3, true},
		{"less", 1, true},
		{"more", 4, false},
		{"zero", 0, false},
		{"negative", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.InStock(tt.qty))
		})
	}
}

func TestLowStockAlert_Message(t *testing.T) {
	t.Parallel()

	a := LowStockAlert{
		BookID:    uuid.New(),
		Title:     "The Go Programming Language",
		Author:    "Alan Donovan",
		Remaining: 1,
	}
	assert.Equal(t,
		`Low Stock Alert: "The Go Programming Language" by Alan Donovan has only 1 copies remaining!`,
		a.Message())
}
