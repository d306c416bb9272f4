package app_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Gunvolt24/price_catalog/config"
	"github.com/Gunvolt24/price_catalog/internal/app"
	"github.com/stretchr/testify/require"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func TestAppRun_GracefulShutdown(t *testing.T) {
	// HTTP-серверы на случайных свободных портах
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		MetricsServer: &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
	}

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestAppRun_ListenErrorIsReturned(t *testing.T) {
	// порт уже занят
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	a := &app.App{
		Logger:     nopLogger{},
		HTTPServer: &http.Server{Addr: ln.Addr().String(), Handler: http.NewServeMux()},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.Error(t, a.Run(ctx))
}

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadWithPrefix("CATALOG_APP_TEST")
	require.NoError(t, err)
	cfg.Store.Backend = "memory"
	cfg.Store.SeedFile = "../../fixtures/catalog.json"
	cfg.Cache.Backend = "memory"
	cfg.Cache.Capacity = 16
	return &cfg
}

func TestNewGateway_MemoryBackends(t *testing.T) {
	ctx := context.Background()

	gw, cleanup, err := app.NewGateway(ctx, memoryConfig(t), nopLogger{})
	require.NoError(t, err)
	defer cleanup()

	name, err := gw.CategoryDisplayName(ctx, 30)
	require.NoError(t, err)
	require.Equal(t, "Bags", name)

	products, err := gw.CategoryProducts(ctx, 30)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Canvas Tote Bag", products[0].DisplayName)

	history, err := gw.PriceHistory(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, history.CurrentPrice)
	require.Equal(t, "$1,199.00", *history.CurrentPrice)
}

func TestNewGateway_UnknownBackends(t *testing.T) {
	ctx := context.Background()

	cfg := memoryConfig(t)
	cfg.Store.Backend = "mongo"
	_, _, err := app.NewGateway(ctx, cfg, nopLogger{})
	require.ErrorContains(t, err, "unknown store backend")

	cfg = memoryConfig(t)
	cfg.Cache.Backend = "memcached"
	_, _, err = app.NewGateway(ctx, cfg, nopLogger{})
	require.ErrorContains(t, err, "unknown cache backend")

	cfg = memoryConfig(t)
	cfg.Store.SeedFile = ""
	_, _, err = app.NewGateway(ctx, cfg, nopLogger{})
	require.Error(t, err)
}
