// Package app assembles the application: configuration, logging, the
// database pool, services, and the HTTP server with graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/calegria/bookstore-backend/internal/adapter/postgres"
	bookrepo "github.com/calegria/bookstore-backend/internal/adapter/postgres/book"
	salerepo "github.com/calegria/bookstore-backend/internal/adapter/postgres/sale"
	"github.com/calegria/bookstore-backend/internal/config"
	"github.com/calegria/bookstore-backend/internal/notify"
	"github.com/calegria/bookstore-backend/internal/service/analytics"
	"github.com/calegria/bookstore-backend/internal/service/catalog"
	"github.com/calegria/bookstore-backend/internal/service/sales"
	"github.com/calegria/bookstore-backend/internal/transport/middleware"
	"github.com/calegria/bookstore-backend/internal/transport/rest"
	"github.com/calegria/bookstore-backend/internal/transport/ws"
)

// Run is the application entry point. It blocks until ctx is cancelled,
// then shuts the HTTP server down gracefully and closes the alert broker.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := Migrate(ctx, logger, cfg.Database); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	broker := notify.NewBroker(cfg.Notify.BufferSize)

	books := bookrepo.New(pool)
	saleLedger := salerepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	catalogSvc := catalog.NewService(logger, books)
	salesSvc := sales.NewService(logger, books, saleLedger, txManager, broker, cfg.Inventory)
	analyticsSvc := analytics.NewService(logger, saleLedger, cfg.Inventory)

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(5 * time.Minute)
		defer limiter.Stop()
	}

	router := rest.NewRouter(logger, *cfg, rest.Handlers{
		Books:     rest.NewBookHandler(logger, catalogSvc, cfg.Inventory),
		Sales:     rest.NewSaleHandler(logger, salesSvc),
		Analytics: rest.NewAnalyticsHandler(logger, analyticsSvc),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Alerts:    ws.NewAlertsHandler(logger, broker, cfg.Notify, cfg.CORS),
	}, limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.Any("error", err))
	}

	// Close after the server has drained so in-flight sales can still
	// publish their alerts.
	broker.Close()

	logger.Info("stopped")
	return nil
}
