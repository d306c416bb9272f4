package ports

import (
	"context"

	"github.com/Gunvolt24/price_catalog/internal/domain"
)

// CatalogReadService — операции чтения каталога для внешних слоёв (HTTP, CLI).
type CatalogReadService interface {
	PriceHistory(ctx context.Context, productID int64) (domain.PriceHistory, error)
	ProductDisplayName(ctx context.Context, productID int64) (string, error)
	SearchProducts(ctx context.Context, queryText string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CategoryDisplayName(ctx context.Context, categoryID int64) (string, error)
	CategoryProducts(ctx context.Context, categoryID int64) ([]domain.Product, error)
	ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}
