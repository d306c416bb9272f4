package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/price_catalog/config"
	cachemem "github.com/Gunvolt24/price_catalog/internal/cache/memory"
	cacheredis "github.com/Gunvolt24/price_catalog/internal/cache/redis"
	"github.com/Gunvolt24/price_catalog/internal/kafka"
	"github.com/Gunvolt24/price_catalog/internal/metricsink"
	"github.com/Gunvolt24/price_catalog/internal/ports"
	repomem "github.com/Gunvolt24/price_catalog/internal/repo/memory"
	"github.com/Gunvolt24/price_catalog/internal/repo/postgres"
	"github.com/Gunvolt24/price_catalog/internal/usecase"
)

// NewGateway — собирает шлюз каталога: хранилище, кэш и приёмники замеров по конфигурации.
// Общая сборка для HTTP-сервера и CLI. Cleanup закрывает ресурсы в обратном порядке.
func NewGateway(ctx context.Context, cfg *config.Config, log ports.Logger) (*usecase.CatalogGateway, Cleanup, error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	closers = append(closers, closeStore)

	cache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	closers = append(closers, closeCache)

	sink, closeSink := newSink(ctx, cfg, log)
	closers = append(closers, closeSink)

	gw := usecase.NewCatalogGateway(store, cache, sink, log, usecase.WithKeyPrefix(cfg.Cache.KeyPrefix))
	log.Infof(ctx, "catalog gateway ready store=%s cache=%s kafka_sink=%t",
		cfg.Store.Backend, cfg.Cache.Backend, cfg.Sink.KafkaEnabled)

	return gw, cleanup, nil
}

// newStore — postgres (пул pgx) или memory (JSON-фикстура).
func newStore(ctx context.Context, cfg *config.Config) (ports.CatalogStore, func(), error) {
	switch backend(cfg.Store.Backend) {
	case "postgres":
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
				return nil, nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres pool: %w", err)
		}
		return postgres.NewCatalogRepository(pool), pool.Close, nil
	case "memory":
		if cfg.Store.SeedFile == "" {
			return nil, nil, fmt.Errorf("memory store: seed file is not set")
		}
		catalog, err := repomem.LoadSeedFile(cfg.Store.SeedFile)
		if err != nil {
			return nil, nil, err
		}
		return catalog, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newCache — in-process LRU или Redis.
func newCache(ctx context.Context, cfg *config.Config) (ports.CacheStore, func(), error) {
	switch backend(cfg.Cache.Backend) {
	case "memory":
		return cachemem.NewLRUCache(cfg.Cache.Capacity), func() {}, nil
	case "redis":
		store, err := cacheredis.New(ctx, cacheredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// newSink — Prometheus всегда; Kafka-публикатор по флагу.
func newSink(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.MetricsSink, func()) {
	prom := metricsink.NewPrometheus()
	if !cfg.Sink.KafkaEnabled {
		return prom, func() {}
	}

	pub := kafka.NewPublisher(&kafka.PublisherConfig{
		Brokers:      cfg.Sink.KafkaBrokers,
		Topic:        cfg.Sink.KafkaTopic,
		RequiredAcks: cfg.Sink.KafkaAcks,
	}, log)
	closeFn := func() {
		if err := pub.Close(); err != nil {
			log.Warnf(ctx, "kafka publisher close error: %v", err)
		}
	}
	return metricsink.Multi{prom, pub}, closeFn
}

func backend(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
