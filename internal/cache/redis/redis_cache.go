// Пакет redis — CacheStore поверх Redis (go-redis/v9).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/pkg/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// Проверка, что Store удовлетворяет интерфейсу CacheStore.
var _ ports.CacheStore = (*Store)(nil)

const backendLabel = "redis"

// Options — параметры подключения.
type Options struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// Store — кэш на Redis; пул соединений клиента потокобезопасен.
type Store struct {
	rdb goredis.UniversalClient
}

// New — создаёт клиента и проверяет соединение PING (fail-fast).
func New(ctx context.Context, opts Options) (*Store, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return &Store{rdb: rdb}, nil
}

// NewWithClient — обёртка над готовым клиентом.
func NewWithClient(rdb goredis.UniversalClient) *Store { return &Store{rdb: rdb} }

// Get — redis.Nil трактуется как промах, остальные ошибки возвращаются.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.CacheOps.WithLabelValues(backendLabel, "miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheOps.WithLabelValues(backendLabel, "error").Inc()
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	metrics.CacheOps.WithLabelValues(backendLabel, "hit").Inc()
	return val, true, nil
}

// Set — ttl == ports.NoExpiry (0) в go-redis означает «без срока жизни».
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = ports.NoExpiry
	}
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.CacheOps.WithLabelValues(backendLabel, "error").Inc()
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close — закрывает пул соединений.
func (s *Store) Close() error { return s.rdb.Close() }
