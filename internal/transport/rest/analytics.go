package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/calegria/bookstore-backend/internal/domain"
)

// analyticsService is the analytics surface this handler needs.
type analyticsService interface {
	Summary(ctx context.Context) (*domain.SalesSummary, error)
	TopBooks(ctx context.Context, limit int) ([]domain.BookSalesSummary, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// AnalyticsHandler serves the /api/analytics endpoints.
type AnalyticsHandler struct {
	log       *slog.Logger
	analytics analyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(logger *slog.Logger, svc analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{log: logger, analytics: svc}
}

type topBookResponse struct {
	BookID       uuid.UUID       `json:"book_id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type summaryResponse struct {
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	TotalSales    int64             `json:"total_sales"`
	TotalQuantity int64             `json:"total_quantity"`
	TopBooks      []topBookResponse `json:"top_books"`
}

type revenueResponse struct {
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Revenue decimal.Decimal `json:"revenue"`
}

func toTopBooks(in []domain.BookSalesSummary) []topBookResponse {
	out := make([]topBookResponse, 0, len(in))
	for _, s := range in {
		out = append(out, topBookResponse{
			BookID:       s.BookID,
			Title:        s.Title,
			Author:       s.Author,
			QuantitySold: s.QuantitySold,
			Revenue:      s.Revenue,
		})
	}
	return out
}

// Summary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Summary(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalRevenue:  summary.TotalRevenue,
		TotalSales:    summary.TotalSales,
		TotalQuantity: summary.TotalQuantity,
		TopBooks:      toTopBooks(summary.TopBooks),
	})
}

// TopBooks handles GET /api/analytics/top-books.
func (h *AnalyticsHandler) TopBooks(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	top, err := h.analytics.TopBooks(r.Context(), limit)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTopBooks(top))
}

// Revenue handles GET /api/analytics/revenue?from=...&to=...
// Both bounds are required, RFC 3339, inclusive.
func (h *AnalyticsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("from", "must be RFC 3339"))
		return
	}
	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("to", "must be RFC 3339"))
		return
	}

	revenue, err := h.analytics.RevenueBetween(r.Context(), from, to)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, revenueResponse{From: from, To: to, Revenue: revenue})
}
