package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/calegria/bookstore-backend/internal/domain"
	"github.com/calegria/bookstore-backend/internal/service/sales"
)

// salesService is the sales surface this handler needs.
type salesService interface {
	RecordSale(ctx context.Context, input sales.RecordSaleInput) (*domain.SaleReceipt, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleWithTitle, error)
	GetSale(ctx context.Context, id uuid.UUID) (*domain.SaleWithTitle, error)
}

// SaleHandler serves the sale endpoints.
type SaleHandler struct {
	log   *slog.Logger
	sales salesService
}

// NewSaleHandler creates a SaleHandler.
func NewSaleHandler(logger *slog.Logger, svc salesService) *SaleHandler {
	return &SaleHandler{log: logger, sales: svc}
}

type recordSaleRequest struct {
	BookID   uuid.UUID `json:"book_id"`
	Quantity int       `json:"quantity"`
}

type receiptResponse struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	BookID      uuid.UUID       `json:"book_id"`
	BookTitle   string          `json:"book_title"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SoldAt      time.Time       `json:"sold_at"`
}

type saleResponse struct {
	ID          uuid.UUID       `json:"id"`
	BookID      uuid.UUID       `json:"book_id"`
	BookTitle   string          `json:"book_title"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SoldAt      time.Time       `json:"sold_at"`
}

func toSaleResponse(s *domain.SaleWithTitle) saleResponse {
	return saleResponse{
		ID:          s.ID,
		BookID:      s.BookID,
		BookTitle:   s.BookTitle,
		Quantity:    s.Quantity,
		TotalAmount: s.TotalAmount,
		SoldAt:      s.SoldAt,
	}
}

// Record handles POST /api/books/sale.
func (h *SaleHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.log, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	receipt, err := h.sales.RecordSale(r.Context(), sales.RecordSaleInput{
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, receiptResponse{
		SaleID:      receipt.SaleID,
		BookID:      receipt.BookID,
		BookTitle:   receipt.BookTitle,
		Quantity:    receipt.Quantity,
		TotalAmount: receipt.TotalAmount,
		SoldAt:      receipt.SoldAt,
	})
}

// List handles GET /api/sales.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.SaleFilter

	q := r.URL.Query()
	if s := q.Get("book_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeError(w, r, h.log, domain.NewValidationError("book_id", "must be a UUID"))
			return
		}
		filter.BookID = &id
	}
	if s := q.Get("from"); s != "" {
		from, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, r, h.log, domain.NewValidationError("from", "must be RFC 3339"))
			return
		}
		filter.From = &from
	}
	if s := q.Get("to"); s != "" {
		to, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, r, h.log, domain.NewValidationError("to", "must be RFC 3339"))
			return
		}
		filter.To = &to
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	list, err := h.sales.ListSales(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := make([]saleResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toSaleResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/sales/{id}.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	s, err := h.sales.GetSale(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleResponse(s))
}
