// Command server runs the spelling-bee REST API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/tuantran92/spelling-bee/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
