package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/Gunvolt24/price_catalog/internal/repo/memory"
	"github.com/Gunvolt24/price_catalog/internal/search"
	"github.com/Gunvolt24/price_catalog/internal/testutil"
)

func newCatalog(t *testing.T) *memory.Catalog {
	t.Helper()
	c, err := memory.NewCatalog(testutil.MakeCatalog())
	require.NoError(t, err)
	return c
}

func displayNames(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.DisplayName)
	}
	return out
}

func TestPricePoints_SortedDescAndCopied(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	ctx := context.Background()

	points, err := c.PricePoints(ctx, testutil.ProductRedShoes)
	require.NoError(t, err)
	require.Len(t, points, 3)
	require.Equal(t, "2024-03-05", points[0].StartDate.Format(domain.DateLayout))
	require.Equal(t, "2024-02-15", points[1].StartDate.Format(domain.DateLayout))
	require.Equal(t, "2024-01-01", points[2].StartDate.Format(domain.DateLayout))

	// изменение результата не портит каталог
	points[0].PriceCents = 1
	again, err := c.PricePoints(ctx, testutil.ProductRedShoes)
	require.NoError(t, err)
	require.Equal(t, int64(1750), again[0].PriceCents)

	none, err := c.PricePoints(ctx, testutil.ProductWoolHat)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestSingleEntities_FoundAndMissing(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	ctx := context.Background()

	p, err := c.ProductByID(ctx, testutil.ProductCanvasShoes)
	require.NoError(t, err)
	require.Equal(t, "Blue Canvas Shoes", p.DisplayName)

	p, err = c.ProductByID(ctx, 404)
	require.NoError(t, err)
	require.Nil(t, p)

	cat, err := c.CategoryByID(ctx, testutil.CategoryHats)
	require.NoError(t, err)
	require.Equal(t, "Hats", cat.DisplayName)

	cat, err = c.CategoryByID(ctx, 404)
	require.NoError(t, err)
	require.Nil(t, cat)
}

func TestSearchProducts_AllTerms(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	ctx := context.Background()
	composer := search.NewComposer()

	got, err := c.SearchProducts(ctx, composer.Compose("red sh"))
	require.NoError(t, err)
	require.Equal(t, []string{"Red Running Shoes"}, displayNames(got))

	got, err = c.SearchProducts(ctx, composer.Compose("  "))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCategoriesAndProducts(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	ctx := context.Background()

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	products, err := c.ProductsByCategory(ctx, testutil.CategoryFootwear)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Red Running Shoes", "Blue Canvas Shoes"}, displayNames(products))

	products, err = c.ProductsByCategory(ctx, 404)
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestProductsByIDs_AscendingSkipsMissingAndDuplicates(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	got, err := c.ProductsByIDs(context.Background(), []int64{3, 404, 1, 3})
	require.NoError(t, err)
	require.Equal(t, []domain.Product{
		{ID: 1, DisplayName: "Red Running Shoes"},
		{ID: 3, DisplayName: "Red Wool Hat"},
	}, got)
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Categories(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewCatalog_RejectsBrokenSeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed memory.Seed
	}{
		{"duplicate_product", testutil.MakeCatalog(testutil.WithProduct(testutil.ProductRedShoes, "dup", 0))},
		{"unknown_category", testutil.MakeCatalog(testutil.WithProduct(99, "orphan", 777))},
		{"price_for_unknown_product", testutil.MakeCatalog(testutil.WithPrice(99, "2024-01-01", 100))},
		{"bad_date", testutil.MakeCatalog(testutil.WithPrice(testutil.ProductWoolHat, "01/02/2024", 100))},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := memory.NewCatalog(tt.seed)
			require.Error(t, err)
		})
	}
}

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	raw := `{
		"categories": [{"id": 1, "display_name": "Books"}],
		"products": [{"id": 7, "display_name": "Go Book", "category_id": 1}],
		"prices": [{"product_id": 7, "start_date": "2024-05-01", "price_cents": 3999}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	c, err := memory.LoadSeedFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	_, err = memory.LoadSeedFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = memory.LoadSeedFile(bad)
	require.Error(t, err)
}
