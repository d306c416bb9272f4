package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/price_catalog/config"
	"github.com/Gunvolt24/price_catalog/internal/app"
	repomem "github.com/Gunvolt24/price_catalog/internal/repo/memory"
	"github.com/Gunvolt24/price_catalog/pkg/logger"
	"github.com/joho/godotenv"
)

// CLI-приложение: одна операция шлюза каталога, результат — JSON в stdout.
func main() {
	op := flag.String("op", "", "operation: "+opsUsage())
	arg := flag.String("arg", "", "operation argument: id, comma-separated ids or search query")
	seed := flag.String("validate-seed", "", "path to a catalog seed file: validate it and exit")
	flag.Parse()

	if *seed != "" {
		catalog, err := repomem.LoadSeedFile(*seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "seed ok (products=%d)\n", catalog.Len())
		return
	}

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cleanupLogger() }()

	gateway, cleanup, err := app.NewGateway(ctx, &cfg, logg)
	if err != nil {
		logg.Errorf(ctx, "build gateway: %v", err)
		os.Exit(1)
	}

	result, err := runOp(ctx, gateway, *op, *arg)
	cleanup()
	if err != nil {
		logg.Errorf(ctx, "op=%s arg=%q: %v", *op, *arg, err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logg.Errorf(ctx, "encode result: %v", err)
		os.Exit(1)
	}
}
