package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// LowStockAlert is built when a sale drops a book's stock below the
// configured threshold. It is transient: constructed, published to the
// notification broker as a plain-text message, and discarded.
type LowStockAlert struct {
	BookID    uuid.UUID
	Title     string
	Author    string
	Remaining int
}

// Message renders the human-readable alert sent to subscribers.
func (a LowStockAlert) Message() string {
	return fmt.Sprintf("Low Stock Alert: %q by %s has only %d copies remaining!",
		a.Title, a.Author, a.Remaining)
}
