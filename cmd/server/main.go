package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/price_catalog/config"
	"github.com/Gunvolt24/price_catalog/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// SIGINT/SIGTERM отменяют контекст и запускают graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := a.Run(ctx); err != nil {
		a.Logger.Errorf(ctx, "service stopped with error: %v", err)
	}
}
