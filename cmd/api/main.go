// Command api runs the bookstore HTTP server: inventory CRUD, the sale
// pipeline, analytics, and the WebSocket low-stock alert feed.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/calegria/bookstore-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
