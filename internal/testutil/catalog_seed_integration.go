//go:build integration

package testutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/price_catalog/internal/repo/memory"
)

// SeedCatalog — записывает фикстуру в Postgres одной транзакцией (batch).
func SeedCatalog(ctx context.Context, pool *pgxpool.Pool, seed memory.Seed) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, c := range seed.Categories {
		batch.Queue(`INSERT INTO categories (id, display_name) VALUES ($1, $2)`, c.ID, c.DisplayName)
	}
	for _, p := range seed.Products {
		var categoryID any
		if p.CategoryID != 0 {
			categoryID = p.CategoryID
		}
		batch.Queue(`INSERT INTO products (id, display_name, category_id) VALUES ($1, $2, $3)`,
			p.ID, p.DisplayName, categoryID)
	}
	for _, pr := range seed.Prices {
		batch.Queue(`INSERT INTO prices (product_id, start_date, price_cents) VALUES ($1, $2::date, $3)`,
			pr.ProductID, pr.StartDate, pr.PriceCents)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed batch: %w", err)
	}
	return tx.Commit(ctx)
}
