package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peerraise/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ledger store + use cases + event bus + telemetry).
// 3) Serve HTTP and consume ledger events until SIGINT/SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI(ctx)
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}

	runErr := app.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Close(closeCtx); err != nil {
		log.Printf("telemetry flush failed: %v", err)
	}
	if runErr != nil {
		log.Fatalf("peerraise api stopped with error: %v", runErr)
	}
}
