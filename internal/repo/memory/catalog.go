// Пакет memory — каталог в памяти процесса, заполняемый из JSON-фикстуры.
// Используется для локального запуска и тестов без Postgres.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/internal/search"
)

// Проверка, что Catalog удовлетворяет интерфейсу CatalogStore.
var _ ports.CatalogStore = (*Catalog)(nil)

// Seed — содержимое фикстуры каталога.
type Seed struct {
	Categories []SeedCategory `json:"categories"`
	Products   []SeedProduct  `json:"products"`
	Prices     []SeedPrice    `json:"prices"`
}

type SeedCategory struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// SeedProduct — товар; CategoryID == 0 — без категории.
type SeedProduct struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	CategoryID  int64  `json:"category_id"`
}

// SeedPrice — точка цены; StartDate в формате 2006-01-02.
type SeedPrice struct {
	ProductID  int64  `json:"product_id"`
	StartDate  string `json:"start_date"`
	PriceCents int64  `json:"price_cents"`
}

// Catalog — неизменяемый после построения снимок каталога; безопасен для конкурентного чтения.
type Catalog struct {
	products     map[int64]domain.Product
	productOrder []int64
	productCat   map[int64]int64

	categories    map[int64]domain.Category
	categoryOrder []int64

	prices map[int64][]domain.PricePoint // по убыванию StartDate
}

// LoadSeedFile — читает фикстуру с диска и строит каталог.
func LoadSeedFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return NewCatalog(seed)
}

// NewCatalog — строит каталог; дубликаты id, ссылки на несуществующие сущности
// и неразборчивые даты — ошибка.
func NewCatalog(seed Seed) (*Catalog, error) {
	c := &Catalog{
		products:   make(map[int64]domain.Product, len(seed.Products)),
		productCat: make(map[int64]int64, len(seed.Products)),
		categories: make(map[int64]domain.Category, len(seed.Categories)),
		prices:     make(map[int64][]domain.PricePoint),
	}

	for _, sc := range seed.Categories {
		if _, dup := c.categories[sc.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %d", sc.ID)
		}
		c.categories[sc.ID] = domain.Category{ID: sc.ID, DisplayName: sc.DisplayName}
		c.categoryOrder = append(c.categoryOrder, sc.ID)
	}

	for _, sp := range seed.Products {
		if _, dup := c.products[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", sp.ID)
		}
		if sp.CategoryID != 0 {
			if _, ok := c.categories[sp.CategoryID]; !ok {
				return nil, fmt.Errorf("product %d: unknown category %d", sp.ID, sp.CategoryID)
			}
		}
		c.products[sp.ID] = domain.Product{ID: sp.ID, DisplayName: sp.DisplayName}
		c.productCat[sp.ID] = sp.CategoryID
		c.productOrder = append(c.productOrder, sp.ID)
	}

	for _, pr := range seed.Prices {
		if _, ok := c.products[pr.ProductID]; !ok {
			return nil, fmt.Errorf("price for unknown product %d", pr.ProductID)
		}
		start, err := time.ParseInLocation(domain.DateLayout, pr.StartDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("price for product %d: bad start_date %q: %w", pr.ProductID, pr.StartDate, err)
		}
		c.prices[pr.ProductID] = append(c.prices[pr.ProductID], domain.PricePoint{
			ProductID:  pr.ProductID,
			StartDate:  start,
			PriceCents: pr.PriceCents,
		})
	}
	for id := range c.prices {
		points := c.prices[id]
		sort.SliceStable(points, func(i, j int) bool { return points[i].StartDate.After(points[j].StartDate) })
	}

	return c, nil
}

// PricePoints — копия точек цены товара по убыванию даты.
func (c *Catalog) PricePoints(ctx context.Context, productID int64) ([]domain.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	points := c.prices[productID]
	out := make([]domain.PricePoint, len(points))
	copy(out, points)
	return out, nil
}

// ProductByID — (nil, nil), если товара нет.
func (c *Catalog) ProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := c.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// SearchProducts — линейный проход с семантикой search.Request.Matches.
func (c *Catalog) SearchProducts(ctx context.Context, req search.Request) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.filterProducts(func(p domain.Product) bool { return req.Matches(p.DisplayName) }), nil
}

func (c *Catalog) Categories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(c.categoryOrder))
	for _, id := range c.categoryOrder {
		out = append(out, c.categories[id])
	}
	return out, nil
}

// CategoryByID — (nil, nil), если категории нет.
func (c *Catalog) CategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cat, ok := c.categories[categoryID]
	if !ok {
		return nil, nil
	}
	return &cat, nil
}

func (c *Catalog) ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.filterProducts(func(p domain.Product) bool { return c.productCat[p.ID] == categoryID }), nil
}

// ProductsByIDs — товары по возрастанию id, как в Postgres-реализации.
func (c *Catalog) ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]domain.Product, 0, len(want))
	for id := range want {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Len — число товаров в каталоге.
func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) filterProducts(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0)
	for _, id := range c.productOrder {
		if p := c.products[id]; keep(p) {
			out = append(out, p)
		}
	}
	return out
}
