// Package rest wires the HTTP API: book inventory CRUD, the sale
// pipeline, analytics, health probes, and the WebSocket alert feed.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calegria/bookstore-backend/internal/config"
	"github.com/calegria/bookstore-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Books     *BookHandler
	Sales     *SaleHandler
	Analytics *AnalyticsHandler
	Health    *HealthHandler

	// Alerts is the WebSocket low-stock feed; nil disables the route.
	Alerts http.Handler
}

// NewRouter builds the HTTP router with the standard middleware chain.
func NewRouter(logger *slog.Logger, cfg config.Config, h Handlers, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	stack := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	if limiter != nil && cfg.Server.RateLimitPerMinute > 0 {
		stack = append(stack, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}
	r.Use(middleware.Chain(stack...))

	r.Get("/health", h.Health.Health)
	r.Get("/readyz", h.Health.Ready)
	r.Get("/healthz", h.Health.Live)

	r.Route("/api", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.Books.List)
			r.Post("/", h.Books.Create)
			r.Post("/sale", h.Sales.Record)
			r.Get("/{id}", h.Books.Get)
			r.Put("/{id}", h.Books.Update)
			r.Delete("/{id}", h.Books.Delete)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.Sales.List)
			r.Get("/{id}", h.Sales.Get)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", h.Analytics.Summary)
			r.Get("/top-books", h.Analytics.TopBooks)
			r.Get("/revenue", h.Analytics.Revenue)
		})
	})

	if h.Alerts != nil {
		r.Handle("/ws/alerts", h.Alerts)
	}

	return r
}
