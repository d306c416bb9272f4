//go:build integration

package testutil

import (
	"context"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/repo/postgres"
)

// ApplyMigrationsGoose — схема каталога в тестовой базе из встроенных миграций.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return postgres.Migrate(ctx, dsn)
}
