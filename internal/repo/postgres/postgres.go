package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Gunvolt24/price_catalog/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver name = "pgx"
	"github.com/pressly/goose/v3"
)

// NewPool — пул соединений к каталогу; maxConns > 0 переопределяет размер из DSN.
// Таймауты запросов шлюз не задаёт: они настраиваются здесь и в DSN.
// Ping в конце — fail-fast при недоступной базе.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// goose держит диалект и FS глобально.
var gooseSetup sync.Once

// Migrate — применяет встроенные миграции каталога (goose up) через отдельное database/sql соединение.
func Migrate(ctx context.Context, dsn string) error {
	var setupErr error
	gooseSetup.Do(func() {
		goose.SetBaseFS(migrations.FS)
		goose.SetLogger(log.New(os.Stdout, "[goose] ", 0))
		setupErr = goose.SetDialect("postgres")
	})
	if setupErr != nil {
		return fmt.Errorf("goose set dialect: %w", setupErr)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
