package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/price_catalog/config"
	"github.com/Gunvolt24/price_catalog/internal/ports"
	rest "github.com/Gunvolt24/price_catalog/internal/transport/http"
	"github.com/Gunvolt24/price_catalog/pkg/logger"
	"github.com/Gunvolt24/price_catalog/pkg/metrics"
	"github.com/Gunvolt24/price_catalog/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App — собранное приложение и его внешние интерфейсы (API и отдельный порт метрик).
type App struct {
	Logger          ports.Logger  // логгер
	HTTPServer      *http.Server  // HTTP-сервер API
	MetricsServer   *http.Server  // сервер /metrics; nil — метрики только на HTTPServer
	gracefulTimeout time.Duration // время ожидания завершения серверов
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.TracingOptions{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Шлюз каталога: хранилище, кэш, приёмники замеров.
	gateway, cleanupGateway, err := NewGateway(ctx, cfg, logg)
	if err != nil {
		_ = shutdownTrace(context.Background())
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(gateway, logg, cfg.HTTP.HandlerTimeout,
		rest.WithImageURLPrefix(cfg.Catalog.ImageURLPrefix))
	router := rest.NewRouter(httpHandler, cfg.HTTP.StaticDir, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   newMetricsServer(cfg),
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		cleanupGateway()
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// newMetricsServer — отдельный порт для Prometheus, если он задан и не совпадает с портом API.
func newMetricsServer(cfg *config.Config) *http.Server {
	if cfg.Metrics.Addr == "" || cfg.Metrics.Addr == cfg.HTTP.Addr {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
}

// Run — запускает HTTP-серверы; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	servers := []*http.Server{a.HTTPServer}
	if a.MetricsServer != nil {
		servers = append(servers, a.MetricsServer)
	}
	errCh := make(chan error, len(servers))

	for _, srv := range servers {
		go func(srv *http.Server) {
			a.Logger.Infof(ctx, "http server starting (addr=%s)", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Warnf(ctx, "http server error: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка серверов.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server shutdown failed addr=%s: %v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server stopped gracefully addr=%s", srv.Addr)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
