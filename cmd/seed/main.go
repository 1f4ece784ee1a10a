// Command seed loads a small sample catalog into the database, for local
// development and demos. Books that already exist (same ISBN) are skipped.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calegria/bookstore-backend/internal/adapter/postgres"
	"github.com/calegria/bookstore-backend/internal/adapter/postgres/book"
	"github.com/calegria/bookstore-backend/internal/app"
	"github.com/calegria/bookstore-backend/internal/config"
	"github.com/calegria/bookstore-backend/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := book.New(pool)

	var created, skipped int
	for _, b := range sampleBooks() {
		if _, err := repo.Create(ctx, &b); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			logger.Error("seed book",
				slog.String("title", b.Title),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		created++
	}

	logger.Info("seed completed",
		slog.Int("created", created),
		slog.Int("skipped", skipped),
	)
}

func sampleBooks() []domain.Book {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	isbn := func(s string) *string { return &s }

	return []domain.Book{
		{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: isbn("978-0134190440"), Price: price("39.99"), Stock: 12},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", ISBN: isbn("978-1449373320"), Price: price("44.50"), Stock: 8},
		{Title: "Dune", Author: "Frank Herbert", ISBN: isbn("978-0441172719"), Price: price("10.99"), Stock: 25},
		{Title: "Neuromancer", Author: "William Gibson", ISBN: isbn("978-0441569595"), Price: price("9.99"), Stock: 4},
		{Title: "Clean Architecture", Author: "Robert Martin", ISBN: isbn("978-0134494166"), Price: price("31.75"), Stock: 6},
		{Title: "The Pragmatic Programmer", Author: "David Thomas", ISBN: isbn("978-0135957059"), Price: price("42.00"), Stock: 15},
	}
}
