package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/price_catalog/internal/cache/memory"
	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/Gunvolt24/price_catalog/internal/metricsink"
	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/internal/repo/memory"
	"github.com/Gunvolt24/price_catalog/internal/testutil"
	"github.com/Gunvolt24/price_catalog/internal/usecase"
)

// manualClock — общие часы для кэша и шлюза.
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// countingStore — считает обращения к хранилищу.
type countingStore struct {
	ports.CatalogStore
	pricePoints  atomic.Int64
	categoryByID atomic.Int64
}

func (s *countingStore) PricePoints(ctx context.Context, productID int64) ([]domain.PricePoint, error) {
	s.pricePoints.Add(1)
	return s.CatalogStore.PricePoints(ctx, productID)
}

func (s *countingStore) CategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	s.categoryByID.Add(1)
	return s.CatalogStore.CategoryByID(ctx, categoryID)
}

type stack struct {
	gw    *usecase.CatalogGateway
	store *countingStore
	clock *manualClock
}

func newStack(t *testing.T) stack {
	t.Helper()
	catalog, err := memory.NewCatalog(testutil.MakeCatalog())
	require.NoError(t, err)

	clock := &manualClock{t: time.Date(2024, 4, 10, 12, 0, 0, 0, time.Local)}
	store := &countingStore{CatalogStore: catalog}
	cache := cachemem.NewLRUCache(128, cachemem.WithClock(clock.Now))
	gw := usecase.NewCatalogGateway(store, cache, metricsink.Nop{}, noopLogger{},
		usecase.WithClock(clock.Now), usecase.WithKeyPrefix("catalog:"))
	return stack{gw: gw, store: store, clock: clock}
}

// pricesAsStrings — цены для сравнения после круга через кэш.
func pricesAsStrings(h domain.PriceHistory) []string {
	out := make([]string, 0, len(h.Prices))
	for _, p := range h.Prices {
		out = append(out, p.StringFixed(2))
	}
	return out
}

func TestMemoryStack_HitEqualsMiss(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	missHistory, err := s.gw.PriceHistory(ctx, testutil.ProductRedShoes)
	require.NoError(t, err)
	hitHistory, err := s.gw.PriceHistory(ctx, testutil.ProductRedShoes)
	require.NoError(t, err)
	require.Equal(t, int64(1), s.store.pricePoints.Load(), "second call must be served from cache")
	require.Equal(t, missHistory.Dates, hitHistory.Dates)
	require.Equal(t, pricesAsStrings(missHistory), pricesAsStrings(hitHistory))
	require.Equal(t, missHistory.MinimumPrice, hitHistory.MinimumPrice)
	require.Equal(t, missHistory.MaximumPrice, hitHistory.MaximumPrice)
	require.Equal(t, missHistory.CurrentPrice, hitHistory.CurrentPrice)

	for _, q := range []string{"red", "red shoes", "nothing-here"} {
		miss, err := s.gw.SearchProducts(ctx, q)
		require.NoError(t, err)
		hit, err := s.gw.SearchProducts(ctx, q)
		require.NoError(t, err)
		require.Equal(t, miss, hit, "query %q", q)
	}

	missCats, err := s.gw.ListCategories(ctx)
	require.NoError(t, err)
	hitCats, err := s.gw.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, missCats, hitCats)

	missIDs, err := s.gw.ProductsByIDs(ctx, []int64{3, 404, 1})
	require.NoError(t, err)
	hitIDs, err := s.gw.ProductsByIDs(ctx, []int64{3, 404, 1})
	require.NoError(t, err)
	require.Equal(t, missIDs, hitIDs)
	require.Len(t, hitIDs, 2)
}

func TestMemoryStack_PriceHistoryShape(t *testing.T) {
	s := newStack(t)

	h, err := s.gw.PriceHistory(context.Background(), testutil.ProductRedShoes)
	require.NoError(t, err)

	// строки фикстуры: 2024-03-05 17.50, 2024-02-15 15.00, 2024-01-01 19.99
	require.Equal(t, []string{"2024-03-05", "2024-02-15", "2024-01-01", "2024-04-10"}, h.Dates)
	require.Equal(t, []string{"17.50", "15.00", "19.99", "19.99"}, pricesAsStrings(h))
	require.Equal(t, "$17.50", *h.CurrentPrice)
	require.Equal(t, "$15.00", *h.MinimumPrice)
	require.Equal(t, "2024-02-15", *h.MinimumPriceDate)
	require.Equal(t, "$19.99", *h.MaximumPrice)
	require.Equal(t, "2024-01-01", *h.MaximumPriceDate)

	empty, err := s.gw.PriceHistory(context.Background(), testutil.ProductWoolHat)
	require.NoError(t, err)
	require.Empty(t, empty.Dates)
	require.Nil(t, empty.MinimumPrice)
}

func TestMemoryStack_SearchSuperset(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	narrow, err := s.gw.SearchProducts(ctx, "red shoes")
	require.NoError(t, err)
	wide, err := s.gw.SearchProducts(ctx, "red")
	require.NoError(t, err)

	require.Len(t, narrow, 1)
	require.Equal(t, "Red Running Shoes", narrow[0].DisplayName)
	require.Subset(t, wide, narrow)
	require.Equal(t, "Red Running Shoes", wide[0].DisplayName)
	require.Equal(t, "Red Wool Hat", wide[1].DisplayName)
}

func TestMemoryStack_SortedByDisplayName(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	cats, err := s.gw.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, "Footwear", cats[0].DisplayName)
	require.Equal(t, "Hats", cats[1].DisplayName)

	products, err := s.gw.CategoryProducts(ctx, testutil.CategoryFootwear)
	require.NoError(t, err)
	require.Equal(t, "Blue Canvas Shoes", products[0].DisplayName)
	require.Equal(t, "Red Running Shoes", products[1].DisplayName)
}

func TestMemoryStack_NotFound(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	name, err := s.gw.ProductDisplayName(ctx, 404)
	require.NoError(t, err)
	require.Equal(t, "UNKNOWN", name)

	name, err = s.gw.CategoryDisplayName(ctx, 404)
	require.NoError(t, err)
	require.Equal(t, "UNKNOWN", name)

	products, err := s.gw.CategoryProducts(ctx, 404)
	require.NoError(t, err)
	require.NotNil(t, products)
	require.Empty(t, products)
}

func TestMemoryStack_PriceHistoryExpiresAfterOneDay(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.gw.PriceHistory(ctx, testutil.ProductRedShoes)
	require.NoError(t, err)

	s.clock.Advance(24*time.Hour - time.Second)
	_, err = s.gw.PriceHistory(ctx, testutil.ProductRedShoes)
	require.NoError(t, err)
	require.Equal(t, int64(1), s.store.pricePoints.Load())

	s.clock.Advance(time.Second)
	h, err := s.gw.PriceHistory(ctx, testutil.ProductRedShoes)
	require.NoError(t, err)
	require.Equal(t, int64(2), s.store.pricePoints.Load(), "entry must be recomputed after TTL")
	require.Equal(t, "2024-04-11", h.Dates[len(h.Dates)-1])
}

func TestMemoryStack_CategoryNameNeverExpires(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.gw.CategoryDisplayName(ctx, testutil.CategoryHats)
	require.NoError(t, err)

	s.clock.Advance(365 * 24 * time.Hour)
	name, err := s.gw.CategoryDisplayName(ctx, testutil.CategoryHats)
	require.NoError(t, err)
	require.Equal(t, "Hats", name)
	require.Equal(t, int64(1), s.store.categoryByID.Load())
}

func TestMemoryStack_ConcurrentMissesConverge(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([][]domain.Product, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := s.gw.CategoryProducts(ctx, testutil.CategoryFootwear)
			if err == nil {
				results[i] = got
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, results[0], r)
	}
	require.Len(t, results[0], 2)
}
