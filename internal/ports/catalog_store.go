package ports

import (
	"context"

	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/Gunvolt24/price_catalog/internal/search"
)

// CatalogStore — постоянное хранилище каталога (источник истины).
// Реализация обязана отдавать типизированные записи: форма документа/строки не выходит за адаптер.
// «Не найдено» — (nil, nil) для одиночных сущностей и пустой срез для коллекций.
type CatalogStore interface {
	// PricePoints — точки цены товара, отсортированные по StartDate по убыванию.
	PricePoints(ctx context.Context, productID int64) ([]domain.PricePoint, error)

	ProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// SearchProducts — товары, удовлетворяющие всем условиям запроса; порядок не гарантируется.
	SearchProducts(ctx context.Context, req search.Request) ([]domain.Product, error)

	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)

	// ProductsByIDs — товары с id из набора; отсутствующие id пропускаются.
	ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}
