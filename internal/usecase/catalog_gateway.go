package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/cache/payload"
	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/internal/pricehistory"
	"github.com/Gunvolt24/price_catalog/internal/search"
	"github.com/Gunvolt24/price_catalog/pkg/ctxmeta"
	"github.com/Gunvolt24/price_catalog/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Проверка, что CatalogGateway удовлетворяет порту CatalogReadService.
var _ ports.CatalogReadService = (*CatalogGateway)(nil)

// Политика TTL. Имена без срока жизни живут до вытеснения самим кэшем.
const (
	DayTTL      = 24 * time.Hour
	DisplayTTL  = ports.NoExpiry
	CategoryTTL = ports.NoExpiry
)

// Исход операции в контексте замера (ключ ports.OutcomeKey).
const (
	outcomeHit   = "hit"
	outcomeMiss  = "miss"
	outcomeError = "error"
)

// CatalogGateway — cache-aside шлюз чтения каталога (без знаний о транспорте).
// Состояния, кроме клиентов хранилищ, не держит; безопасен для конкурентных вызовов.
// Одновременные промахи по одному ключу не сериализуются: каждый пересчитывает значение, последняя запись побеждает.
type CatalogGateway struct {
	catalog    ports.CatalogStore  // источник истины
	cache      ports.CacheStore    // эфемерный кэш
	sink       ports.MetricsSink   // замеры задержки
	log        ports.Logger        // логгер
	summarizer *pricehistory.Summarizer
	composer   *search.Composer
	keys       KeyBuilder
	now        func() time.Time
}

// Option — настройка CatalogGateway.
type Option func(*CatalogGateway)

// WithClock — часы для «сегодня» в истории цен и для замеров задержки.
func WithClock(now func() time.Time) Option {
	return func(g *CatalogGateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithKeyPrefix — общий префикс ключей кэша (например, "catalog:").
func WithKeyPrefix(prefix string) Option {
	return func(g *CatalogGateway) { g.keys = NewKeyBuilder(prefix) }
}

// NewCatalogGateway — DI-конструктор.
func NewCatalogGateway(
	catalog ports.CatalogStore,
	cache ports.CacheStore,
	sink ports.MetricsSink,
	log ports.Logger,
	opts ...Option,
) *CatalogGateway {
	g := &CatalogGateway{
		catalog:  catalog,
		cache:    cache,
		sink:     sink,
		log:      log,
		composer: search.NewComposer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.summarizer = pricehistory.NewSummarizer(g.now)
	return g
}

// PriceHistory — история цен товара со статистикой; пустая история, если точек нет.
func (g *CatalogGateway) PriceHistory(ctx context.Context, productID int64) (domain.PriceHistory, error) {
	ctx, span, start := g.begin(ctx, OpPriceHistory)
	history, outcome, err := readThrough(ctx, g, g.keys.PriceHistory(productID), DayTTL, payload.PriceHistory,
		func(ctx context.Context) (domain.PriceHistory, error) {
			rows, err := g.catalog.PricePoints(ctx, productID)
			if err != nil {
				return domain.PriceHistory{}, err
			}
			return g.summarizer.Summarize(rows), nil
		})
	g.record(ctx, span, OpPriceHistory, start, outcome, map[string]any{"product_id": productID}, err)
	return history, err
}

// ProductDisplayName — имя товара или domain.UnknownDisplayName.
func (g *CatalogGateway) ProductDisplayName(ctx context.Context, productID int64) (string, error) {
	ctx, span, start := g.begin(ctx, OpProductDisplayName)
	name, outcome, err := readThrough(ctx, g, g.keys.ProductDisplayName(productID), DisplayTTL, payload.DisplayName,
		func(ctx context.Context) (string, error) {
			p, err := g.catalog.ProductByID(ctx, productID)
			if err != nil {
				return "", err
			}
			if p == nil {
				return domain.UnknownDisplayName, nil
			}
			return p.DisplayName, nil
		})
	g.record(ctx, span, OpProductDisplayName, start, outcome, map[string]any{"product_id": productID}, err)
	return name, err
}

// SearchProducts — товары, совпавшие со всеми термами запроса, по возрастанию имени.
func (g *CatalogGateway) SearchProducts(ctx context.Context, queryText string) ([]domain.Product, error) {
	ctx, span, start := g.begin(ctx, OpSearchProducts)
	products, outcome, err := readThrough(ctx, g, g.keys.SearchProducts(queryText), DayTTL, payload.Products,
		func(ctx context.Context) ([]domain.Product, error) {
			found, err := g.catalog.SearchProducts(ctx, g.composer.Compose(queryText))
			if err != nil {
				return nil, err
			}
			return sortProducts(found), nil
		})
	g.record(ctx, span, OpSearchProducts, start, outcome, map[string]any{"query": queryText}, err)
	return products, err
}

// ListCategories — все категории по возрастанию имени.
func (g *CatalogGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, span, start := g.begin(ctx, OpListCategories)
	categories, outcome, err := readThrough(ctx, g, g.keys.ListCategories(), CategoryTTL, payload.Categories,
		func(ctx context.Context) ([]domain.Category, error) {
			found, err := g.catalog.Categories(ctx)
			if err != nil {
				return nil, err
			}
			return sortCategories(found), nil
		})
	g.record(ctx, span, OpListCategories, start, outcome, map[string]any{}, err)
	return categories, err
}

// CategoryDisplayName — имя категории или domain.UnknownDisplayName.
func (g *CatalogGateway) CategoryDisplayName(ctx context.Context, categoryID int64) (string, error) {
	ctx, span, start := g.begin(ctx, OpCategoryDisplayName)
	name, outcome, err := readThrough(ctx, g, g.keys.CategoryDisplayName(categoryID), DisplayTTL, payload.DisplayName,
		func(ctx context.Context) (string, error) {
			c, err := g.catalog.CategoryByID(ctx, categoryID)
			if err != nil {
				return "", err
			}
			if c == nil {
				return domain.UnknownDisplayName, nil
			}
			return c.DisplayName, nil
		})
	g.record(ctx, span, OpCategoryDisplayName, start, outcome, map[string]any{"category_id": categoryID}, err)
	return name, err
}

// CategoryProducts — товары категории по возрастанию имени.
func (g *CatalogGateway) CategoryProducts(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	ctx, span, start := g.begin(ctx, OpCategoryProducts)
	products, outcome, err := readThrough(ctx, g, g.keys.CategoryProducts(categoryID), DayTTL, payload.Products,
		func(ctx context.Context) ([]domain.Product, error) {
			found, err := g.catalog.ProductsByCategory(ctx, categoryID)
			if err != nil {
				return nil, err
			}
			return sortProducts(found), nil
		})
	g.record(ctx, span, OpCategoryProducts, start, outcome, map[string]any{"category_id": categoryID}, err)
	return products, err
}

// ProductsByIDs — найденные товары в порядке хранилища. Неполный результат не ошибка:
// пишется предупреждение с запрошенным списком и найденным подмножеством.
func (g *CatalogGateway) ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	ctx, span, start := g.begin(ctx, OpProductsByIDs)
	products, outcome, err := readThrough(ctx, g, g.keys.ProductsByIDs(ids), DayTTL, payload.Products,
		func(ctx context.Context) ([]domain.Product, error) {
			found, err := g.catalog.ProductsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			if found == nil {
				found = []domain.Product{}
			}
			return found, nil
		})
	if err == nil && len(products) < len(ids) {
		g.log.Warnf(ctx, "partial result for products by ids requested=%v found=%v", ids, productIDs(products))
	}
	g.record(ctx, span, OpProductsByIDs, start, outcome, map[string]any{"ids": formatIDs(ids)}, err)
	return products, err
}

// readThrough — общий cache-aside шаг: Get → (hit) Decode | (miss) load → Encode → Set.
// Ошибки кэша, кодека и хранилища возвращаются как есть; при ошибке Set значение не отдаётся.
func readThrough[T any](
	ctx context.Context,
	g *CatalogGateway,
	key string,
	ttl time.Duration,
	codec payload.Codec[T],
	load func(context.Context) (T, error),
) (T, string, error) {
	var zero T

	raw, found, err := g.cache.Get(ctx, key)
	if err != nil {
		g.log.Errorf(ctx, "cache.Get failed key=%s err=%v", key, err)
		return zero, outcomeError, err
	}
	if found {
		v, decErr := codec.Decode(raw)
		if decErr != nil {
			g.log.Errorf(ctx, "cache payload decode failed key=%s err=%v", key, decErr)
			return zero, outcomeError, decErr
		}
		g.log.Infof(ctx, "cache hit key=%s", key)
		return v, outcomeHit, nil
	}
	g.log.Infof(ctx, "cache miss key=%s", key)

	v, err := load(ctx)
	if err != nil {
		g.log.Errorf(ctx, "catalog fetch failed key=%s err=%v", key, err)
		return zero, outcomeError, err
	}

	encoded, err := codec.Encode(v)
	if err != nil {
		g.log.Errorf(ctx, "cache payload encode failed key=%s err=%v", key, err)
		return zero, outcomeError, err
	}
	if err := g.cache.Set(ctx, key, encoded, ttl); err != nil {
		g.log.Errorf(ctx, "cache.Set failed key=%s err=%v", key, err)
		return zero, outcomeError, err
	}
	return v, outcomeMiss, nil
}

// begin — контекст операции: имя операции для логов адаптеров и внутренний спан.
func (g *CatalogGateway) begin(ctx context.Context, op string) (context.Context, trace.Span, time.Time) {
	ctx = ctxmeta.WithOperation(ctx, op)
	ctx, span := telemetry.StartSpan(ctx, "catalog."+op)
	return ctx, span, g.now()
}

// record — закрывает спан и отдаёт замер всей операции в MetricsSink;
// ошибка и паника приёмника не доходят до вызывающего.
func (g *CatalogGateway) record(
	ctx context.Context,
	span trace.Span,
	op string,
	start time.Time,
	outcome string,
	meta map[string]any,
	opErr error,
) {
	span.SetAttributes(attribute.String("catalog.outcome", outcome))
	if opErr != nil {
		span.RecordError(opErr)
		span.SetStatus(codes.Error, opErr.Error())
	}
	span.End()

	if g.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.log.Warnf(ctx, "metrics sink panicked op=%s: %v", op, r)
		}
	}()

	meta[ports.OutcomeKey] = outcome
	sample := ports.LatencySample{
		Operation:  op,
		DurationMs: g.now().Sub(start).Milliseconds(),
		Context:    meta,
	}
	if err := g.sink.Record(ctx, sample); err != nil {
		g.log.Warnf(ctx, "metrics sink failed op=%s err=%v", op, err)
	}
}

// sortProducts — сортировка по имени на стороне шлюза; nil превращается в пустой список.
func sortProducts(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].DisplayName < products[j].DisplayName })
	return products
}

func sortCategories(categories []domain.Category) []domain.Category {
	if categories == nil {
		return []domain.Category{}
	}
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].DisplayName < categories[j].DisplayName })
	return categories
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
