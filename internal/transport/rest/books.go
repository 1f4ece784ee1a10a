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

	"github.com/calegria/bookstore-backend/internal/config"
	"github.com/calegria/bookstore-backend/internal/domain"
	"github.com/calegria/bookstore-backend/internal/service/catalog"
)

// catalogService is the catalog surface this handler needs.
type catalogService interface {
	ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	CreateBook(ctx context.Context, input catalog.BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input catalog.BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

// BookHandler serves the /api/books endpoints.
type BookHandler struct {
	log     *slog.Logger
	catalog catalogService
	cfg     config.InventoryConfig
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(logger *slog.Logger, svc catalogService, cfg config.InventoryConfig) *BookHandler {
	return &BookHandler{log: logger, catalog: svc, cfg: cfg}
}

type bookRequest struct {
	Title  string          `json:"title"`
	Author string          `json:"author"`
	ISBN   *string         `json:"isbn,omitempty"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
}

func (r bookRequest) toInput() catalog.BookInput {
	return catalog.BookInput{
		Title:  r.Title,
		Author: r.Author,
		ISBN:   r.ISBN,
		Price:  r.Price,
		Stock:  r.Stock,
	}
}

type bookResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ISBN      *string         `json:"isbn,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Price:     b.Price,
		Stock:     b.Stock,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// List handles GET /api/books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.BookFilter{Threshold: h.cfg.LowStockThreshold}

	q := r.URL.Query()
	if s := q.Get("search"); s != "" {
		filter.Search = &s
	}
	if q.Get("low_stock") == "true" {
		filter.LowStockOnly = true
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	books, err := h.catalog.ListBooks(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := make([]bookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, toBookResponse(&books[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	book, err := h.catalog.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookResponse(book))
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.log, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	book, err := h.catalog.CreateBook(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookResponse(book))
}

// Update handles PUT /api/books/{id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.log, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	book, err := h.catalog.UpdateBook(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookResponse(book))
}

// Delete handles DELETE /api/books/{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	if err := h.catalog.DeleteBook(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
